package application

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
	repo "github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/repository"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/apperr"
)

type fakeJobRepo struct {
	jobs   []*entity.Job
	nextID int64
}

func (f *fakeJobRepo) Create(_ context.Context, j *entity.Job) error {
	f.nextID++
	j.ID = f.nextID
	j.CreatedAt = time.Now()
	j.UpdatedAt = j.CreatedAt
	cp := *j
	f.jobs = append(f.jobs, &cp)
	return nil
}

func (f *fakeJobRepo) FindByID(_ context.Context, id int64) (*entity.Job, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			cp := *j
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeJobRepo) ListActive(_ context.Context) ([]*entity.Job, error) {
	var out []*entity.Job
	for _, j := range f.jobs {
		if j.Active {
			cp := *j
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) ListByEmployer(_ context.Context, employerID int64) ([]*entity.Job, error) {
	var out []*entity.Job
	for _, j := range f.jobs {
		if j.EmployerID == employerID {
			cp := *j
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) SetActive(_ context.Context, id int64, active bool) error {
	for _, j := range f.jobs {
		if j.ID == id {
			j.Active = active
			return nil
		}
	}
	return apperr.NotFound("job")
}

func (f *fakeJobRepo) Stats(_ context.Context, employerID int64) (*repo.EmployerStats, error) {
	st := &repo.EmployerStats{}
	for _, j := range f.jobs {
		if j.EmployerID != employerID {
			continue
		}
		if j.Active {
			st.ActiveJobs++
		} else {
			st.FinishedJobs++
		}
	}
	return st, nil
}

type fakeApplicationRepo struct {
	apps   []*entity.Application
	jobs   *fakeJobRepo
	nextID int64
}

// denormalize mirrors what the SQL join fills in on reads.
func (f *fakeApplicationRepo) denormalize(a entity.Application) *entity.Application {
	if f.jobs != nil {
		for _, j := range f.jobs.jobs {
			if j.ID == a.JobID {
				a.JobTitle = j.Title
				a.JobEmployerID = j.EmployerID
			}
		}
	}
	return &a
}

func (f *fakeApplicationRepo) Create(_ context.Context, a *entity.Application) error {
	for _, ex := range f.apps {
		if ex.JobID == a.JobID && ex.WorkerID == a.WorkerID {
			return apperr.Duplicate("application")
		}
	}
	f.nextID++
	a.ID = f.nextID
	a.CreatedAt = time.Now()
	cp := *a
	f.apps = append(f.apps, &cp)
	return nil
}

func (f *fakeApplicationRepo) FindByID(_ context.Context, id int64) (*entity.Application, error) {
	for _, a := range f.apps {
		if a.ID == id {
			return f.denormalize(*a), nil
		}
	}
	return nil, nil
}

func (f *fakeApplicationRepo) ListByJob(_ context.Context, jobID int64) ([]*entity.Application, error) {
	var out []*entity.Application
	for _, a := range f.apps {
		if a.JobID == jobID {
			out = append(out, f.denormalize(*a))
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListByWorker(_ context.Context, workerID int64) ([]*entity.Application, error) {
	var out []*entity.Application
	for _, a := range f.apps {
		if a.WorkerID == workerID {
			out = append(out, f.denormalize(*a))
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) Exists(_ context.Context, jobID, workerID int64) (bool, error) {
	for _, a := range f.apps {
		if a.JobID == jobID && a.WorkerID == workerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationRepo) UpdateStatus(_ context.Context, id int64, status entity.ApplicationStatus) error {
	for _, a := range f.apps {
		if a.ID == id {
			a.Status = status
			return nil
		}
	}
	return apperr.NotFound("application")
}

func (f *fakeApplicationRepo) MarkSeen(_ context.Context, id int64) error {
	for _, a := range f.apps {
		if a.ID == id {
			a.Seen = true
			return nil
		}
	}
	return apperr.NotFound("application")
}

type fixture struct {
	users    *fakeUserRepo
	jobs     *fakeJobRepo
	apps     *fakeApplicationRepo
	jobSvc   *JobService
	appSvc   *ApplicationService
	employer *entity.User
	worker   *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	users := &fakeUserRepo{}
	employer := &entity.User{NationalID: "11111111", FullName: "ANA TORRES RIOS", Handle: "anatorres", Role: entity.RoleEmployer}
	worker := &entity.User{NationalID: "22222222", FullName: "JUAN PEREZ GOMEZ", Handle: "juanperez", Phone: "987654321", Role: entity.RoleWorker}
	require.NoError(t, users.Save(context.Background(), employer))
	require.NoError(t, users.Save(context.Background(), worker))

	jobs := &fakeJobRepo{}
	apps := &fakeApplicationRepo{jobs: jobs}
	return &fixture{
		users:    users,
		jobs:     jobs,
		apps:     apps,
		jobSvc:   NewJobService(jobs, users, nil, nil, "", logger),
		appSvc:   NewApplicationService(apps, jobs, users, nil, logger),
		employer: employer,
		worker:   worker,
	}
}

func (f *fixture) publishJob(t *testing.T) *entity.Job {
	t.Helper()
	j, err := f.jobSvc.Publish(context.Background(), f.employer.NationalID, PublishJobInput{
		Title:       "Gasfitero para baño",
		Description: "Reparación de tuberías en Surco",
		Location:    "Lima",
		Salary:      "S/ 150 por día",
	})
	require.NoError(t, err)
	return j
}

func TestPublishRequiresEmployerRole(t *testing.T) {
	f := newFixture(t)

	_, err := f.jobSvc.Publish(context.Background(), f.worker.NationalID, PublishJobInput{Title: "x"})

	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))
	assert.Empty(t, f.jobs.jobs)
}

func TestPublishAndListActive(t *testing.T) {
	f := newFixture(t)
	j := f.publishJob(t)

	assert.True(t, j.Active)
	assert.Equal(t, f.employer.ID, j.EmployerID)
	assert.Equal(t, "ANA TORRES RIOS", j.EmployerName)

	list, err := f.jobSvc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestFinishOnlyByOwner(t *testing.T) {
	f := newFixture(t)
	j := f.publishJob(t)

	other := &entity.User{NationalID: "33333333", Handle: "otheremp", Role: entity.RoleEmployer}
	require.NoError(t, f.users.Save(context.Background(), other))

	err := f.jobSvc.Finish(context.Background(), other.NationalID, j.ID)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))

	require.NoError(t, f.jobSvc.Finish(context.Background(), f.employer.NationalID, j.ID))
	got, err := f.jobSvc.Get(context.Background(), j.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestApplyOncePerJob(t *testing.T) {
	f := newFixture(t)
	j := f.publishJob(t)

	a, err := f.appSvc.Apply(context.Background(), f.worker.NationalID, j.ID, "disponible de inmediato")
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationPending, a.Status)

	_, err = f.appSvc.Apply(context.Background(), f.worker.NationalID, j.ID, "otra vez")
	assert.Equal(t, apperr.KindDuplicate, apperr.KindOf(err))
	status, _ := apperr.Status(err)
	assert.Equal(t, 409, status)
}

func TestApplyRejectedForEmployersAndInactiveJobs(t *testing.T) {
	f := newFixture(t)
	j := f.publishJob(t)

	_, err := f.appSvc.Apply(context.Background(), f.employer.NationalID, j.ID, "")
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))

	require.NoError(t, f.jobSvc.Finish(context.Background(), f.employer.NationalID, j.ID))
	_, err = f.appSvc.Apply(context.Background(), f.worker.NationalID, j.ID, "")
	assert.Equal(t, apperr.KindFormat, apperr.KindOf(err))
}

func TestListByJobOwnerOnly(t *testing.T) {
	f := newFixture(t)
	j := f.publishJob(t)
	_, err := f.appSvc.Apply(context.Background(), f.worker.NationalID, j.ID, "hola")
	require.NoError(t, err)

	_, err = f.appSvc.ListByJob(context.Background(), f.worker.NationalID, j.ID)
	assert.Equal(t, apperr.KindPermission, apperr.KindOf(err))

	list, err := f.appSvc.ListByJob(context.Background(), f.employer.NationalID, j.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, f.worker.ID, list[0].WorkerID)
}

func TestUpdateStatusValidatesTarget(t *testing.T) {
	f := newFixture(t)
	j := f.publishJob(t)
	a, err := f.appSvc.Apply(context.Background(), f.worker.NationalID, j.ID, "")
	require.NoError(t, err)

	err = f.appSvc.UpdateStatus(context.Background(), f.employer.NationalID, a.ID, entity.ApplicationPending)
	assert.Equal(t, apperr.KindFormat, apperr.KindOf(err))

	err = f.appSvc.UpdateStatus(context.Background(), f.employer.NationalID, a.ID, "WHATEVER")
	assert.Equal(t, apperr.KindFormat, apperr.KindOf(err))

	require.NoError(t, f.appSvc.UpdateStatus(context.Background(), f.employer.NationalID, a.ID, entity.ApplicationAccepted))
	got, err := f.apps.FindByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationAccepted, got.Status)
}

func TestEmployerStatsCountsJobs(t *testing.T) {
	f := newFixture(t)
	j1 := f.publishJob(t)
	f.publishJob(t)
	require.NoError(t, f.jobSvc.Finish(context.Background(), f.employer.NationalID, j1.ID))

	st, err := f.jobSvc.Stats(context.Background(), f.employer.NationalID)
	require.NoError(t, err)
	assert.Equal(t, 1, st.ActiveJobs)
	assert.Equal(t, 1, st.FinishedJobs)
}
