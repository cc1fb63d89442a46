package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
	repo "github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/repository"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/apperr"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/helpers"
)

const JobEventApplied = "job.applied"

// ApplicationService handles workers applying to jobs and employers
// reviewing those applications.
type ApplicationService struct {
	Applications repo.ApplicationRepository
	Jobs         repo.JobRepository
	Users        repo.UserRepository
	Rabbit       *helpers.RabbitPublisher
	Logger       *logrus.Logger
}

func NewApplicationService(apps repo.ApplicationRepository, jobs repo.JobRepository, users repo.UserRepository, rabbit *helpers.RabbitPublisher, logger *logrus.Logger) *ApplicationService {
	return &ApplicationService{Applications: apps, Jobs: jobs, Users: users, Rabbit: rabbit, Logger: logger}
}

// Apply creates a pending application for the calling worker. A worker can
// apply to a given job at most once; the unique (job, worker) constraint in
// the database backs the pre-check under races.
func (s *ApplicationService) Apply(ctx context.Context, subject string, jobID int64, message string) (*entity.Application, error) {
	worker, err := findUserBySubject(ctx, s.Users, subject)
	if err != nil {
		return nil, err
	}
	if worker.Role != entity.RoleWorker {
		return nil, apperr.Permission("only workers can apply to jobs")
	}

	job, err := s.Jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperr.NotFound("job")
	}
	if !job.Active {
		return nil, apperr.Format("this job is no longer accepting applications")
	}

	applied, err := s.Applications.Exists(ctx, jobID, worker.ID)
	if err != nil {
		return nil, err
	}
	if applied {
		return nil, apperr.Duplicate("application")
	}

	a := &entity.Application{
		JobID:    jobID,
		WorkerID: worker.ID,
		Message:  message,
		Status:   entity.ApplicationPending,
	}
	if err := s.Applications.Create(ctx, a); err != nil {
		return nil, err
	}
	a.JobTitle = job.Title
	a.WorkerName = worker.FullName
	a.WorkerDNI = worker.NationalID
	a.WorkerPhone = worker.Phone
	a.JobEmployerID = job.EmployerID

	if s.Rabbit != nil {
		ev := JobEvent{Type: JobEventApplied, JobID: jobID, At: a.CreatedAt}
		if err := s.Rabbit.PublishJSON(ctx, ev); err != nil {
			s.Logger.WithError(err).WithField("job_id", jobID).Warn("rabbit publish failed")
		}
	}

	s.Logger.WithFields(logrus.Fields{"application_id": a.ID, "job_id": jobID, "worker_id": worker.ID}).Info("application created")
	return a, nil
}

// ListMine returns the calling worker's applications, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, subject string) ([]*entity.Application, error) {
	worker, err := findUserBySubject(ctx, s.Users, subject)
	if err != nil {
		return nil, err
	}
	return s.Applications.ListByWorker(ctx, worker.ID)
}

// ListByJob returns a job's applications to its owning employer.
func (s *ApplicationService) ListByJob(ctx context.Context, subject string, jobID int64) ([]*entity.Application, error) {
	employer, err := findUserBySubject(ctx, s.Users, subject)
	if err != nil {
		return nil, err
	}
	job, err := s.Jobs.FindByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, apperr.NotFound("job")
	}
	if job.EmployerID != employer.ID {
		return nil, apperr.Permission("you do not own this job")
	}
	return s.Applications.ListByJob(ctx, jobID)
}

// HasApplied reports whether the calling worker already applied to a job.
func (s *ApplicationService) HasApplied(ctx context.Context, subject string, jobID int64) (bool, error) {
	worker, err := findUserBySubject(ctx, s.Users, subject)
	if err != nil {
		return false, err
	}
	return s.Applications.Exists(ctx, jobID, worker.ID)
}

// UpdateStatus accepts or rejects an application. Only the employer who owns
// the job may change it, and PENDING is not a valid target.
func (s *ApplicationService) UpdateStatus(ctx context.Context, subject string, applicationID int64, status entity.ApplicationStatus) error {
	if !status.Valid() || status == entity.ApplicationPending {
		return apperr.Format("status must be ACCEPTED or REJECTED")
	}
	a, err := s.ownedApplication(ctx, subject, applicationID)
	if err != nil {
		return err
	}
	return s.Applications.UpdateStatus(ctx, a.ID, status)
}

// MarkSeen flags an application as reviewed by the owning employer.
func (s *ApplicationService) MarkSeen(ctx context.Context, subject string, applicationID int64) error {
	a, err := s.ownedApplication(ctx, subject, applicationID)
	if err != nil {
		return err
	}
	return s.Applications.MarkSeen(ctx, a.ID)
}

func (s *ApplicationService) ownedApplication(ctx context.Context, subject string, applicationID int64) (*entity.Application, error) {
	employer, err := findUserBySubject(ctx, s.Users, subject)
	if err != nil {
		return nil, err
	}
	a, err := s.Applications.FindByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.NotFound("application")
	}
	if a.JobEmployerID != employer.ID {
		return nil, apperr.Permission("you do not own this job")
	}
	return a, nil
}
