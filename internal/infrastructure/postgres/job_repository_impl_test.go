package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockJobRepo(t *testing.T) (*JobRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewJobRepository(mock), mock
}

func TestStatsScansAllAggregates(t *testing.T) {
	repo, mock := newMockJobRepo(t)

	mock.ExpectQuery("SELECT(.+)FROM jobs j(.+)LEFT JOIN applications a").
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"active", "finished", "total", "recent"}).
			AddRow(3, 2, 17, 4))

	s, err := repo.Stats(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 3, s.ActiveJobs)
	assert.Equal(t, 2, s.FinishedJobs)
	assert.Equal(t, 17, s.TotalApplications)
	assert.Equal(t, 4, s.NewApplications)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsEmployerWithoutJobsIsAllZeroes(t *testing.T) {
	repo, mock := newMockJobRepo(t)

	mock.ExpectQuery("SELECT(.+)FROM jobs j(.+)LEFT JOIN applications a").
		WithArgs(int64(9)).
		WillReturnRows(pgxmock.NewRows([]string{"active", "finished", "total", "recent"}).
			AddRow(0, 0, 0, 0))

	s, err := repo.Stats(context.Background(), 9)
	require.NoError(t, err)

	assert.Zero(t, s.ActiveJobs)
	assert.Zero(t, s.TotalApplications)
	assert.NoError(t, mock.ExpectationsWereMet())
}
