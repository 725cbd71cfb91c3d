package skill

import (
	"time"

	"github.com/mquinde/devfolio/internal/listing"
)

// Field names as they appear in JSON payloads and validation errors.
const (
	FieldName        = "name"
	FieldCategory    = "category"
	FieldProficiency = "proficiency"
	FieldColor       = "color"
	FieldYears       = "yearsOfExperience"
	FieldDescription = "description"
	FieldSkills      = "skills"
)

// Categories is the closed set of skill categories.
var Categories = []string{
	"Frontend", "Backend", "Database", "Tools & Technologies",
	"Design", "Soft Skills", "Other",
}

// DefaultColor is the accent color applied when none is supplied.
const DefaultColor = "#3B82F6"

// Skill is one entry in the public skills matrix. There is no draft state;
// inactive skills stay listable but are dropped from the category view the
// front end renders.
type Skill struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Category          string    `json:"category"`
	Proficiency       int       `json:"proficiency"`
	Icon              *string   `json:"icon,omitempty"`
	Color             string    `json:"color"`
	YearsOfExperience int       `json:"yearsOfExperience"`
	Description       *string   `json:"description,omitempty"`
	IsActive          bool      `json:"isActive"`
	SortOrder         int       `json:"sortOrder"`
	CreatedBy         string    `json:"createdBy"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// OrderInput is one entry of a bulk reorder request.
type OrderInput struct {
	ID        string `json:"id"`
	SortOrder int    `json:"sortOrder"`
}

// ListConfig is the listing policy for the skill matrix.
func ListConfig() listing.Config {
	return listing.Config{
		Kind:         listing.KindSkill,
		DefaultLimit: 20,
		DefaultSort:  "sortOrder",
		DefaultOrder: "asc",
		FilterFields: map[string]listing.FieldType{
			"category": listing.FieldString,
			"isActive": listing.FieldBool,
		},
		SortFields: map[string]bool{
			"sortOrder": true, "name": true, "proficiency": true,
			"createdAt": true, "updatedAt": true,
		},
	}
}
