package message

import (
	"time"

	"github.com/mquinde/devfolio/internal/listing"
)

// Field names as they appear in JSON payloads and validation errors.
const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldSubject      = "subject"
	FieldBody         = "message"
	FieldCategory     = "category"
	FieldStatus       = "status"
	FieldPriority     = "priority"
	FieldReplyMessage = "replyMessage"
)

// Message statuses.
const (
	StatusNew      = "new"
	StatusRead     = "read"
	StatusReplied  = "replied"
	StatusArchived = "archived"
)

// Categories is the closed set of contact-form categories.
var Categories = []string{
	"General Inquiry", "Project Proposal", "Job Opportunity",
	"Collaboration", "Feedback", "Other",
}

// Statuses is the closed set of inbox workflow states.
var Statuses = []string{StatusNew, StatusRead, StatusReplied, StatusArchived}

// Priorities is the closed set of triage priorities.
var Priorities = []string{"low", "medium", "high"}

// Defaults applied to new contact-form submissions.
const (
	DefaultCategory = "General Inquiry"
	DefaultPriority = "medium"
)

// Message is one contact-form submission. Submission is public; everything
// else about a message is admin-only. Spam-flagged messages are excluded from
// the regular inbox listing.
type Message struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        *string    `json:"phone,omitempty"`
	Subject      string     `json:"subject"`
	Body         string     `json:"message"`
	Category     string     `json:"category"`
	Status       string     `json:"status"`
	Priority     string     `json:"priority"`
	IPAddress    string     `json:"ipAddress,omitempty"`
	UserAgent    string     `json:"userAgent,omitempty"`
	IsSpam       bool       `json:"isSpam"`
	RepliedAt    *time.Time `json:"repliedAt,omitempty"`
	ReplyMessage *string    `json:"replyMessage,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ListConfig is the listing policy for the message inbox.
func ListConfig() listing.Config {
	return listing.Config{
		Kind:         listing.KindMessage,
		DefaultLimit: 20,
		DefaultSort:  "createdAt",
		FilterFields: map[string]listing.FieldType{
			"status":   listing.FieldString,
			"category": listing.FieldString,
			"priority": listing.FieldString,
		},
		SortFields: map[string]bool{
			"createdAt": true, "updatedAt": true, "priority": true, "status": true,
		},
	}
}
