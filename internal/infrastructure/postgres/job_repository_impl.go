package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/repository"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/apperr"
)

type JobRepository struct {
	db DB
}

func NewJobRepository(db DB) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `
		j.id, j.title, j.description, j.contact_phone, j.show_phone,
		j.location, j.salary, j.ruc, j.attachments, j.employer_id, j.active,
		j.created_at, j.updated_at, u.full_name, COALESCE(u.handle, '')`

func scanJob(row pgx.Row) (*entity.Job, error) {
	j := &entity.Job{}
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.ContactPhone,
		&j.ShowPhone, &j.Location, &j.Salary, &j.RUC, &j.Attachments,
		&j.EmployerID, &j.Active, &j.CreatedAt, &j.UpdatedAt,
		&j.EmployerName, &j.EmployerHandle)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return j, nil
}

func (r *JobRepository) Create(ctx context.Context, j *entity.Job) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO jobs (title, description, contact_phone, show_phone,
			location, salary, ruc, attachments, employer_id, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, j.Title, j.Description, j.ContactPhone, j.ShowPhone, j.Location,
		j.Salary, j.RUC, j.Attachments, j.EmployerID, j.Active)
	return row.Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
}

func (r *JobRepository) FindByID(ctx context.Context, id int64) (*entity.Job, error) {
	return scanJob(r.db.QueryRow(ctx, `
		SELECT`+jobColumns+`
		FROM jobs j JOIN users u ON u.id = j.employer_id
		WHERE j.id = $1
	`, id))
}

func (r *JobRepository) list(ctx context.Context, sql string, args ...any) ([]*entity.Job, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*entity.Job, 0)
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *JobRepository) ListActive(ctx context.Context) ([]*entity.Job, error) {
	return r.list(ctx, `
		SELECT`+jobColumns+`
		FROM jobs j JOIN users u ON u.id = j.employer_id
		WHERE j.active
		ORDER BY j.created_at DESC
	`)
}

func (r *JobRepository) ListByEmployer(ctx context.Context, employerID int64) ([]*entity.Job, error) {
	return r.list(ctx, `
		SELECT`+jobColumns+`
		FROM jobs j JOIN users u ON u.id = j.employer_id
		WHERE j.employer_id = $1
		ORDER BY j.created_at DESC
	`, employerID)
}

func (r *JobRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res, err := r.db.Exec(ctx, `
		UPDATE jobs SET active = $1, updated_at = now() WHERE id = $2
	`, active, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("job")
	}
	return nil
}

func (r *JobRepository) Stats(ctx context.Context, employerID int64) (*repository.EmployerStats, error) {
	s := &repository.EmployerStats{}
	row := r.db.QueryRow(ctx, `
		SELECT
			COUNT(DISTINCT j.id) FILTER (WHERE j.active),
			COUNT(DISTINCT j.id) FILTER (WHERE NOT j.active),
			COUNT(a.id),
			COUNT(a.id) FILTER (WHERE a.created_at > now() - interval '24 hours')
		FROM jobs j
		LEFT JOIN applications a ON a.job_id = j.id
		WHERE j.employer_id = $1
	`, employerID)
	if err := row.Scan(&s.ActiveJobs, &s.FinishedJobs, &s.TotalApplications, &s.NewApplications); err != nil {
		return nil, err
	}
	return s, nil
}

var _ repository.JobRepository = (*JobRepository)(nil)
