package entity

import "time"

// ApplicationStatus is the closed set of states an application moves through.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationAccepted ApplicationStatus = "ACCEPTED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

func (s ApplicationStatus) Valid() bool {
	return s == ApplicationPending || s == ApplicationAccepted || s == ApplicationRejected
}

// Application is a worker's application to a job. A worker can apply to a
// given job at most once.
type Application struct {
	ID        int64
	JobID     int64
	WorkerID  int64
	Message   string
	Status    ApplicationStatus
	Seen      bool
	CreatedAt time.Time

	// Denormalized fields for listings.
	JobTitle      string
	WorkerName    string
	WorkerDNI     string
	WorkerPhone   string
	JobEmployerID int64
}
