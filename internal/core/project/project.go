package project

import (
	"time"

	"github.com/mquinde/devfolio/internal/listing"
)

// Field names as they appear in JSON payloads and validation errors.
const (
	FieldTitle            = "title"
	FieldSlug             = "slug"
	FieldDescription      = "description"
	FieldShortDescription = "shortDescription"
	FieldThumbnail        = "thumbnail"
	FieldTechnologies     = "technologies"
	FieldCategory         = "category"
	FieldStatus           = "status"
	FieldLiveURL          = "liveUrl"
	FieldGithubURL        = "githubUrl"
	FieldPriority         = "priority"
)

// Categories is the closed set of portfolio project categories.
var Categories = []string{
	"Web Development", "Mobile App", "UI/UX Design", "Full Stack",
	"Frontend", "Backend", "Other",
}

// Statuses is the closed set of project lifecycle states.
var Statuses = []string{"In Progress", "Completed", "On Hold", "Archived"}

// DefaultStatus is applied when a new project omits its status.
const DefaultStatus = "Completed"

// FeaturedShelfSize is how many projects the featured shelf returns by default.
const FeaturedShelfSize = 6

// Project is a portfolio work item. Unpublished projects exist only for
// admins; every public read path is pinned to IsPublished.
type Project struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Description      string    `json:"description"`
	ShortDescription *string   `json:"shortDescription,omitempty"`
	Thumbnail        string    `json:"thumbnail"`
	Technologies     []string  `json:"technologies"`
	Tags             []string  `json:"tags,omitempty"`
	Category         string    `json:"category"`
	Status           string    `json:"status"`
	LiveURL          *string   `json:"liveUrl,omitempty"`
	GithubURL        *string   `json:"githubUrl,omitempty"`
	Featured         bool      `json:"featured"`
	Priority         int       `json:"priority"`
	Views            int       `json:"views"`
	Likes            int       `json:"likes"`
	IsPublished      bool      `json:"isPublished"`
	CreatedBy        string    `json:"createdBy"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ListConfig is the listing policy for the project collection.
func ListConfig() listing.Config {
	return listing.Config{
		Kind:         listing.KindProject,
		DefaultLimit: 10,
		DefaultSort:  "createdAt",
		FilterFields: map[string]listing.FieldType{
			"status":      listing.FieldString,
			"category":    listing.FieldString,
			"priority":    listing.FieldInt,
			"featured":    listing.FieldBool,
			"isPublished": listing.FieldBool,
		},
		SortFields: map[string]bool{
			"createdAt": true, "updatedAt": true, "priority": true,
			"views": true, "likes": true, "title": true,
		},
	}
}
