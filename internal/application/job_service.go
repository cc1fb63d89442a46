package application

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
	repo "github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/repository"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/apperr"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/helpers"
)

// JobEvent is the message published to the jobs queue on every lifecycle change.
type JobEvent struct {
	Type  string    `json:"type"`
	JobID int64     `json:"jobId"`
	At    time.Time `json:"at"`
}

const (
	JobEventCreated  = "job.created"
	JobEventFinished = "job.finished"
)

// JobService manages job postings: publishing, listing, finishing, employer
// stats, and full-text search over the jobs index.
type JobService struct {
	Jobs        repo.JobRepository
	Users       repo.UserRepository
	Rabbit      *helpers.RabbitPublisher
	ES          *elasticsearch.Client
	ESJobsIndex string
	Logger      *logrus.Logger
}

func NewJobService(jobs repo.JobRepository, users repo.UserRepository, rabbit *helpers.RabbitPublisher, es *elasticsearch.Client, esJobsIndex string, logger *logrus.Logger) *JobService {
	return &JobService{Jobs: jobs, Users: users, Rabbit: rabbit, ES: es, ESJobsIndex: esJobsIndex, Logger: logger}
}

// findUserBySubject resolves a token subject (a national ID) to its account.
func findUserBySubject(ctx context.Context, users repo.UserRepository, subject string) (*entity.User, error) {
	u, err := users.FindByNationalID(ctx, subject)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user")
	}
	return u, nil
}

type PublishJobInput struct {
	Title        string
	Description  string
	ContactPhone string
	ShowPhone    bool
	Location     string
	Salary       string
	RUC          string
	Attachments  []string
}

// Publish creates an active job owned by the calling employer.
func (s *JobService) Publish(ctx context.Context, subject string, in PublishJobInput) (*entity.Job, error) {
	employer, err := findUserBySubject(ctx, s.Users, subject)
	if err != nil {
		return nil, err
	}
	if employer.Role != entity.RoleEmployer {
		return nil, apperr.Permission("only employers can publish jobs")
	}

	j := &entity.Job{
		Title:          in.Title,
		Description:    in.Description,
		ContactPhone:   in.ContactPhone,
		ShowPhone:      in.ShowPhone,
		Location:       in.Location,
		Salary:         in.Salary,
		RUC:            in.RUC,
		Attachments:    in.Attachments,
		EmployerID:     employer.ID,
		Active:         true,
		EmployerName:   employer.FullName,
		EmployerHandle: employer.Handle,
	}
	if err := s.Jobs.Create(ctx, j); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, JobEventCreated, j.ID)
	_ = IndexJob(ctx, s.ES, s.ESJobsIndex, j, s.Logger)

	s.Logger.WithFields(logrus.Fields{"job_id": j.ID, "employer_id": employer.ID}).Info("job published")
	return j, nil
}

func (s *JobService) ListActive(ctx context.Context) ([]*entity.Job, error) {
	return s.Jobs.ListActive(ctx)
}

func (s *JobService) Get(ctx context.Context, id int64) (*entity.Job, error) {
	j, err := s.Jobs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, apperr.NotFound("job")
	}
	return j, nil
}

func (s *JobService) ListByEmployer(ctx context.Context, subject string) ([]*entity.Job, error) {
	employer, err := findUserBySubject(ctx, s.Users, subject)
	if err != nil {
		return nil, err
	}
	return s.Jobs.ListByEmployer(ctx, employer.ID)
}

// ListByEmployerID is the public view of an employer's postings.
func (s *JobService) ListByEmployerID(ctx context.Context, employerID int64) ([]*entity.Job, error) {
	return s.Jobs.ListByEmployer(ctx, employerID)
}

// Finish marks a job as no longer active. Only the owning employer may do it.
func (s *JobService) Finish(ctx context.Context, subject string, jobID int64) error {
	employer, err := findUserBySubject(ctx, s.Users, subject)
	if err != nil {
		return err
	}
	j, err := s.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if j.EmployerID != employer.ID {
		return apperr.Permission("you do not own this job")
	}
	if err := s.Jobs.SetActive(ctx, jobID, false); err != nil {
		return err
	}
	j.Active = false

	s.publishEvent(ctx, JobEventFinished, jobID)
	_ = IndexJob(ctx, s.ES, s.ESJobsIndex, j, s.Logger)
	return nil
}

// Stats returns the employer dashboard counters.
func (s *JobService) Stats(ctx context.Context, subject string) (*repo.EmployerStats, error) {
	employer, err := findUserBySubject(ctx, s.Users, subject)
	if err != nil {
		return nil, err
	}
	return s.Jobs.Stats(ctx, employer.ID)
}

func (s *JobService) publishEvent(ctx context.Context, kind string, jobID int64) {
	if s.Rabbit == nil {
		return
	}
	ev := JobEvent{Type: kind, JobID: jobID, At: time.Now().UTC()}
	if err := s.Rabbit.PublishJSON(ctx, ev); err != nil {
		s.Logger.WithError(err).WithField("job_id", jobID).Warn("rabbit publish failed")
	}
}

// JobDocument shapes a job for the search index.
func JobDocument(j *entity.Job) map[string]any {
	return map[string]any{
		"id":          j.ID,
		"title":       j.Title,
		"description": j.Description,
		"location":    j.Location,
		"salary":      j.Salary,
		"employer":    j.EmployerName,
		"active":      j.Active,
		"created_at":  j.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  j.UpdatedAt.Format(time.RFC3339Nano),
	}
}

// IndexJob writes a job document into the search index. Failures are logged
// and swallowed so a search outage never blocks the write path.
func IndexJob(ctx context.Context, es *elasticsearch.Client, index string, j *entity.Job, logger *logrus.Logger) error {
	if es == nil || index == "" {
		return nil
	}
	b, _ := json.Marshal(JobDocument(j))
	req := esapi.IndexRequest{Index: index, DocumentID: strconv.FormatInt(j.ID, 10), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, es)
	if err != nil {
		if logger != nil {
			logger.WithError(err).WithField("job_id", j.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && logger != nil {
		logger.WithField("status", res.Status()).WithField("job_id", j.ID).Warn("es index response error")
	}
	return nil
}

// Search runs a multi_match query over title, description, and location.
func (s *JobService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESJobsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "location"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESJobsIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
