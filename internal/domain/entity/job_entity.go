package entity

import "time"

// Job is a posting published by an employer. ContactPhone is only exposed to
// other users when ShowPhone is set.
type Job struct {
	ID           int64
	Title        string
	Description  string
	ContactPhone string
	ShowPhone    bool
	Location     string
	Salary       string
	RUC          string
	Attachments  []string
	EmployerID   int64
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Denormalized employer fields for listings.
	EmployerName   string
	EmployerHandle string
}
