package schema

// RefProjectTable represents the 'core.project' table
type RefProjectTable struct {
	Table            string
	ID               string
	Title            string
	Slug             string
	Description      string
	ShortDescription string
	Thumbnail        string
	Technologies     string
	Tags             string
	Category         string
	Status           string
	LiveURL          string
	GithubURL        string
	Featured         string
	Priority         string
	Views            string
	Likes            string
	IsPublished      string
	CreatedBy        string
	CreatedAt        string
	UpdatedAt        string
}

// RefProject is the schema definition for core.project
var RefProject = RefProjectTable{
	Table:            "core.project",
	ID:               "id",
	Title:            "title",
	Slug:             "slug",
	Description:      "description",
	ShortDescription: "shortdescription",
	Thumbnail:        "thumbnail",
	Technologies:     "technologies",
	Tags:             "tags",
	Category:         "category",
	Status:           "status",
	LiveURL:          "liveurl",
	GithubURL:        "githuburl",
	Featured:         "featured",
	Priority:         "priority",
	Views:            "views",
	Likes:            "likes",
	IsPublished:      "ispublished",
	CreatedBy:        "createdby",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

func (t RefProjectTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Slug, t.Description, t.ShortDescription, t.Thumbnail,
		t.Technologies, t.Tags, t.Category, t.Status, t.LiveURL, t.GithubURL,
		t.Featured, t.Priority, t.Views, t.Likes, t.IsPublished, t.CreatedBy,
		t.CreatedAt, t.UpdatedAt,
	}
}
