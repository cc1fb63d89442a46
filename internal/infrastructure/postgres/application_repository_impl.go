package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/repository"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/apperr"
)

type ApplicationRepository struct {
	db DB
}

func NewApplicationRepository(db DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `
		a.id, a.job_id, a.worker_id, a.message, a.status, a.seen,
		a.created_at, j.title, j.employer_id, w.full_name, w.national_id,
		COALESCE(w.phone, '')`

func scanApplication(row pgx.Row) (*entity.Application, error) {
	a := &entity.Application{}
	err := row.Scan(&a.ID, &a.JobID, &a.WorkerID, &a.Message, &a.Status,
		&a.Seen, &a.CreatedAt, &a.JobTitle, &a.JobEmployerID, &a.WorkerName,
		&a.WorkerDNI, &a.WorkerPhone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return a, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, a *entity.Application) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO applications (job_id, worker_id, message, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, a.JobID, a.WorkerID, a.Message, a.Status)
	if err := row.Scan(&a.ID, &a.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperr.Duplicate("application")
		}
		return err
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id int64) (*entity.Application, error) {
	return scanApplication(r.db.QueryRow(ctx, `
		SELECT`+applicationColumns+`
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users w ON w.id = a.worker_id
		WHERE a.id = $1
	`, id))
}

func (r *ApplicationRepository) list(ctx context.Context, sql string, args ...any) ([]*entity.Application, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*entity.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID int64) ([]*entity.Application, error) {
	return r.list(ctx, `
		SELECT`+applicationColumns+`
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users w ON w.id = a.worker_id
		WHERE a.job_id = $1
		ORDER BY a.created_at DESC
	`, jobID)
}

func (r *ApplicationRepository) ListByWorker(ctx context.Context, workerID int64) ([]*entity.Application, error) {
	return r.list(ctx, `
		SELECT`+applicationColumns+`
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users w ON w.id = a.worker_id
		WHERE a.worker_id = $1
		ORDER BY a.created_at DESC
	`, workerID)
}

func (r *ApplicationRepository) Exists(ctx context.Context, jobID, workerID int64) (bool, error) {
	var found bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND worker_id = $2)
	`, jobID, workerID).Scan(&found)
	return found, err
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id int64, status entity.ApplicationStatus) error {
	res, err := r.db.Exec(ctx, `
		UPDATE applications SET status = $1 WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("application")
	}
	return nil
}

func (r *ApplicationRepository) MarkSeen(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `
		UPDATE applications SET seen = true WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("application")
	}
	return nil
}

var _ repository.ApplicationRepository = (*ApplicationRepository)(nil)
