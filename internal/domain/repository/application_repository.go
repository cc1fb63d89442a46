package repository

import (
	"context"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
)

// ApplicationRepository persists job applications. Create must surface a
// duplicate-identifier error when the (job, worker) unique constraint fires.
type ApplicationRepository interface {
	Create(ctx context.Context, a *entity.Application) error
	FindByID(ctx context.Context, id int64) (*entity.Application, error)
	ListByJob(ctx context.Context, jobID int64) ([]*entity.Application, error)
	ListByWorker(ctx context.Context, workerID int64) ([]*entity.Application, error)
	Exists(ctx context.Context, jobID, workerID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status entity.ApplicationStatus) error
	MarkSeen(ctx context.Context, id int64) error
}
