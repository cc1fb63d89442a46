package entity

// Role is the closed set of account roles.
type Role string

const (
	RoleWorker   Role = "WORKER"
	RoleEmployer Role = "EMPLOYER"
)

func (r Role) Valid() bool {
	return r == RoleWorker || r == RoleEmployer
}
