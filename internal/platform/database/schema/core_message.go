package schema

// RefMessageTable represents the 'core.message' table
type RefMessageTable struct {
	Table        string
	ID           string
	Name         string
	Email        string
	Phone        string
	Subject      string
	Body         string
	Category     string
	Status       string
	Priority     string
	IPAddress    string
	UserAgent    string
	IsSpam       string
	RepliedAt    string
	ReplyMessage string
	Notes        string
	CreatedAt    string
	UpdatedAt    string
}

// RefMessage is the schema definition for core.message
var RefMessage = RefMessageTable{
	Table:        "core.message",
	ID:           "id",
	Name:         "name",
	Email:        "email",
	Phone:        "phone",
	Subject:      "subject",
	Body:         "body",
	Category:     "category",
	Status:       "status",
	Priority:     "priority",
	IPAddress:    "ipaddress",
	UserAgent:    "useragent",
	IsSpam:       "isspam",
	RepliedAt:    "repliedat",
	ReplyMessage: "replymessage",
	Notes:        "notes",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

func (t RefMessageTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Phone, t.Subject, t.Body, t.Category,
		t.Status, t.Priority, t.IPAddress, t.UserAgent, t.IsSpam,
		t.RepliedAt, t.ReplyMessage, t.Notes, t.CreatedAt, t.UpdatedAt,
	}
}
