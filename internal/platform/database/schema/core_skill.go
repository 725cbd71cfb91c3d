package schema

// RefSkillTable represents the 'core.skill' table
type RefSkillTable struct {
	Table             string
	ID                string
	Name              string
	Category          string
	Proficiency       string
	Icon              string
	Color             string
	YearsOfExperience string
	Description       string
	IsActive          string
	SortOrder         string
	CreatedBy         string
	CreatedAt         string
	UpdatedAt         string
}

// RefSkill is the schema definition for core.skill
var RefSkill = RefSkillTable{
	Table:             "core.skill",
	ID:                "id",
	Name:              "name",
	Category:          "category",
	Proficiency:       "proficiency",
	Icon:              "icon",
	Color:             "color",
	YearsOfExperience: "yearsofexperience",
	Description:       "description",
	IsActive:          "isactive",
	SortOrder:         "sortorder",
	CreatedBy:         "createdby",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

func (t RefSkillTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Category, t.Proficiency, t.Icon, t.Color,
		t.YearsOfExperience, t.Description, t.IsActive, t.SortOrder,
		t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	}
}
