package entity

import (
	"time"
)

// User is the aggregate root for the identity domain.
// Passwords are stored as bcrypt hashes in Password; the name fields are
// copied verbatim from the national registry at registration and the
// national ID is immutable after creation.
type User struct {
	ID              int64
	NationalID      string
	GivenNames      string
	PaternalSurname string
	MaternalSurname string
	FullName        string
	Handle          string
	Password        string
	Phone           string
	Email           string
	Role            Role
	Skills          string
	WorkExperience  string
	DNIFrontURL     string
	DNIBackURL      string
	CertificateURL  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
