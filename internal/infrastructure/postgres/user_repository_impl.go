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

const uniqueViolation = "23505"

// duplicateField maps a users unique constraint to the JSON field name
// reported to the client.
func duplicateField(constraint string) string {
	switch constraint {
	case "users_national_id_key":
		return "nationalId"
	case "users_handle_key":
		return "handle"
	case "users_phone_key":
		return "phone"
	case "users_email_key":
		return "email"
	default:
		return "identifier"
	}
}

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `
		id, national_id, given_names, paternal_surname, maternal_surname,
		full_name, COALESCE(handle, ''), password_hash, COALESCE(phone, ''),
		COALESCE(email, ''), role, COALESCE(skills, ''),
		COALESCE(work_experience, ''), COALESCE(dni_front_url, ''),
		COALESCE(dni_back_url, ''), COALESCE(certificate_url, ''),
		created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.NationalID, &u.GivenNames, &u.PaternalSurname,
		&u.MaternalSurname, &u.FullName, &u.Handle, &u.Password, &u.Phone,
		&u.Email, &u.Role, &u.Skills, &u.WorkExperience, &u.DNIFrontURL,
		&u.DNIBackURL, &u.CertificateURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// Save inserts when the user has no id yet and updates otherwise. Optional
// identifiers are stored as NULL so the partial unique indexes ignore
// accounts that never set them. A unique violation that slips past the
// advisory pre-checks comes back as a duplicate-identifier error.
func (r *UserRepository) Save(ctx context.Context, u *entity.User) error {
	var err error
	if u.ID == 0 {
		row := r.db.QueryRow(ctx, `
		INSERT INTO users (national_id, given_names, paternal_surname,
			maternal_surname, full_name, handle, password_hash, phone, email,
			role, skills, work_experience, dni_front_url, dni_back_url,
			certificate_url)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''),
			NULLIF($9, ''), $10, $11, $12, NULLIF($13, ''), NULLIF($14, ''),
			NULLIF($15, ''))
		RETURNING id, created_at, updated_at
	`, u.NationalID, u.GivenNames, u.PaternalSurname, u.MaternalSurname,
			u.FullName, u.Handle, u.Password, u.Phone, u.Email, u.Role,
			u.Skills, u.WorkExperience, u.DNIFrontURL, u.DNIBackURL,
			u.CertificateURL)
		err = row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	} else {
		row := r.db.QueryRow(ctx, `
		UPDATE users
		SET handle = NULLIF($1, ''), password_hash = $2, phone = NULLIF($3, ''),
			email = NULLIF($4, ''), role = $5, skills = $6,
			work_experience = $7, dni_front_url = NULLIF($8, ''),
			dni_back_url = NULLIF($9, ''), certificate_url = NULLIF($10, ''),
			updated_at = now()
		WHERE id = $11
		RETURNING updated_at
	`, u.Handle, u.Password, u.Phone, u.Email, u.Role, u.Skills,
			u.WorkExperience, u.DNIFrontURL, u.DNIBackURL, u.CertificateURL, u.ID)
		err = row.Scan(&u.UpdatedAt)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperr.Duplicate(duplicateField(pgErr.ConstraintName))
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("user")
		}
		return err
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) FindByNationalID(ctx context.Context, nationalID string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE national_id = $1`, nationalID))
}

func (r *UserRepository) FindByHandle(ctx context.Context, handle string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE handle = $1`, handle))
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE phone = $1`, phone))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT`+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) exists(ctx context.Context, column, value string) (bool, error) {
	var found bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE `+column+` = $1)`, value).Scan(&found)
	return found, err
}

func (r *UserRepository) ExistsByNationalID(ctx context.Context, nationalID string) (bool, error) {
	return r.exists(ctx, "national_id", nationalID)
}

func (r *UserRepository) ExistsByHandle(ctx context.Context, handle string) (bool, error) {
	return r.exists(ctx, "handle", handle)
}

func (r *UserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "phone", phone)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

var _ repository.UserRepository = (*UserRepository)(nil)
