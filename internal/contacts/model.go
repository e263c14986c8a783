package contacts

import "time"

const (
	StatusNew        = "new"
	StatusContacted  = "contacted"
	StatusInProgress = "in-progress"
	StatusConverted  = "converted"
	StatusClosed     = "closed"

	PriorityMedium = "medium"

	defaultSource = "Website"
)

type Contact struct {
	ID              string     `bson:"_id,omitempty" json:"id"`
	Name            string     `bson:"name" json:"name" validate:"required,max=50"`
	Email           string     `bson:"email" json:"email" validate:"required,mailbox"`
	Phone           string     `bson:"phone,omitempty" json:"phone,omitempty" validate:"omitempty,phone"`
	Company         string     `bson:"company,omitempty" json:"company,omitempty" validate:"max=100"`
	Industry        string     `bson:"industry,omitempty" json:"industry,omitempty" validate:"omitempty,enum=industry"`
	Designation     string     `bson:"designation,omitempty" json:"designation,omitempty" validate:"max=100"`
	Subject         string     `bson:"subject,omitempty" json:"subject,omitempty" validate:"max=200"`
	Message         string     `bson:"message" json:"message" validate:"required,max=1000"`
	ServiceInterest []string   `bson:"serviceInterest" json:"serviceInterest" validate:"dive,enum=serviceCategory"`
	Budget          string     `bson:"budget,omitempty" json:"budget,omitempty" validate:"omitempty,enum=budget"`
	Timeline        string     `bson:"timeline,omitempty" json:"timeline,omitempty" validate:"omitempty,enum=timeline"`
	Source          string     `bson:"source" json:"source" validate:"required,enum=contactSource"`
	Status          string     `bson:"status" json:"status" validate:"required,oneof=new contacted in-progress converted closed"`
	Priority        string     `bson:"priority" json:"priority" validate:"required,oneof=low medium high urgent"`
	Notes           string     `bson:"notes,omitempty" json:"notes,omitempty" validate:"max=500"`
	AssignedTo      string     `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	IPAddress       string     `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	UserAgent       string     `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	IsSpam          bool       `bson:"isSpam" json:"isSpam"`
	FollowUpDate    *time.Time `bson:"followUpDate,omitempty" json:"followUpDate,omitempty"`
	ClosedDate      *time.Time `bson:"closedDate,omitempty" json:"closedDate,omitempty"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// SubmitRequest is the public contact form.
type SubmitRequest struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Company         string   `json:"company"`
	Industry        string   `json:"industry"`
	Designation     string   `json:"designation"`
	Subject         string   `json:"subject"`
	Message         string   `json:"message"`
	ServiceInterest []string `json:"serviceInterest"`
	Budget          string   `json:"budget"`
	Timeline        string   `json:"timeline"`
	Source          string   `json:"source"`
}

// UpdateRequest carries the admin-managed fields. Submitted content is not
// editable.
type UpdateRequest struct {
	Status       *string    `json:"status"`
	Priority     *string    `json:"priority"`
	Notes        *string    `json:"notes"`
	AssignedTo   *string    `json:"assignedTo"`
	IsSpam       *bool      `json:"isSpam"`
	FollowUpDate *time.Time `json:"followUpDate"`
	ClosedDate   *time.Time `json:"closedDate"`
}

// Submitter is what the transport layer knows about the sender.
type Submitter struct {
	IPAddress string
	UserAgent string
}
