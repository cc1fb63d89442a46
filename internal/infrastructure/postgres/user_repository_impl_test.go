package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/apperr"
)

func newMockRepo(t *testing.T) (*UserRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewUserRepository(mock), mock
}

func userRowColumns() []string {
	return []string{
		"id", "national_id", "given_names", "paternal_surname", "maternal_surname",
		"full_name", "handle", "password_hash", "phone", "email", "role", "skills",
		"work_experience", "dni_front_url", "dni_back_url", "certificate_url",
		"created_at", "updated_at",
	}
}

func TestSaveInsertFillsGeneratedFields(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("12345678", "JUAN", "PEREZ", "GOMEZ", "JUAN PEREZ GOMEZ",
			"juanp24", "hash", "987654321", "juan@example.com",
			entity.RoleWorker, "", "", "", "", "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow(int64(7), now, now))

	u := &entity.User{
		NationalID:      "12345678",
		GivenNames:      "JUAN",
		PaternalSurname: "PEREZ",
		MaternalSurname: "GOMEZ",
		FullName:        "JUAN PEREZ GOMEZ",
		Handle:          "juanp24",
		Password:        "hash",
		Phone:           "987654321",
		Email:           "juan@example.com",
		Role:            entity.RoleWorker,
	}
	require.NoError(t, repo.Save(context.Background(), u))

	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, now, u.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveMapsUniqueViolationToDuplicate(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_handle_key"})

	err := repo.Save(context.Background(), &entity.User{NationalID: "12345678", Role: entity.RoleWorker})

	require.Error(t, err)
	assert.Equal(t, apperr.KindDuplicate, apperr.KindOf(err))
	status, msg := apperr.Status(err)
	assert.Equal(t, 409, status)
	assert.Contains(t, msg, "handle")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByNationalIDReturnsNilWhenMissing(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT(.+)FROM users WHERE national_id").
		WithArgs("00000000").
		WillReturnError(pgx.ErrNoRows)

	u, err := repo.FindByNationalID(context.Background(), "00000000")

	assert.NoError(t, err)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByHandleScansRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery("SELECT(.+)FROM users WHERE handle").
		WithArgs("juanp24").
		WillReturnRows(pgxmock.NewRows(userRowColumns()).AddRow(
			int64(7), "12345678", "JUAN", "PEREZ", "GOMEZ", "JUAN PEREZ GOMEZ",
			"juanp24", "hash", "987654321", "juan@example.com", entity.RoleWorker,
			"", "", "", "", "", now, now))

	u, err := repo.FindByHandle(context.Background(), "juanp24")

	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "12345678", u.NationalID)
	assert.Equal(t, "JUAN PEREZ GOMEZ", u.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("juan@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	found, err := repo.ExistsByEmail(context.Background(), "juan@example.com")

	require.NoError(t, err)
	assert.True(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}
