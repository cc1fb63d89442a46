package repository

import (
	"context"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
)

// EmployerStats are the aggregate counters shown on the employer dashboard.
type EmployerStats struct {
	ActiveJobs        int `json:"activeJobs"`
	FinishedJobs      int `json:"finishedJobs"`
	TotalApplications int `json:"totalApplications"`
	NewApplications   int `json:"newApplications"` // received in the last 24 hours
}

type JobRepository interface {
	Create(ctx context.Context, j *entity.Job) error
	FindByID(ctx context.Context, id int64) (*entity.Job, error)
	ListActive(ctx context.Context) ([]*entity.Job, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]*entity.Job, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Stats(ctx context.Context, employerID int64) (*EmployerStats, error)
}
