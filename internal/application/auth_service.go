package application

import (
	"context"
	"regexp"

	"github.com/sirupsen/logrus"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
	repo "github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/repository"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/apperr"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/helpers"
)

var (
	dniRe   = regexp.MustCompile(`^[0-9]{8}$`)
	phoneRe = regexp.MustCompile(`^[0-9]{9}$`)
)

// IdentityVerifier resolves a national ID to a verified legal-name record.
type IdentityVerifier interface {
	Verify(ctx context.Context, nationalID string) (*entity.Identity, error)
}

// AuthService orchestrates registration and login. It is stateless; every
// call is an independent unit of work against the credential store.
type AuthService struct {
	Users    repo.UserRepository
	Verifier IdentityVerifier
	Tokens   *helpers.TokenManager
	Logger   *logrus.Logger
}

func NewAuthService(users repo.UserRepository, verifier IdentityVerifier, tokens *helpers.TokenManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Verifier: verifier, Tokens: tokens, Logger: logger}
}

type RegisterInput struct {
	NationalID      string
	Handle          string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	Role            entity.Role
}

// AuthResult is the profile + token payload returned by both register and login.
type AuthResult struct {
	Token      string `json:"token"`
	Type       string `json:"type"`
	ID         int64  `json:"id"`
	NationalID string `json:"nationalId"`
	FullName   string `json:"fullName"`
	Handle     string `json:"handle,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Role       string `json:"role"`
	Message    string `json:"message"`
}

func (s *AuthService) result(u *entity.User, token, message string) *AuthResult {
	return &AuthResult{
		Token:      token,
		Type:       "Bearer",
		ID:         u.ID,
		NationalID: u.NationalID,
		FullName:   u.FullName,
		Handle:     u.Handle,
		Phone:      u.Phone,
		Role:       string(u.Role),
		Message:    message,
	}
}

// Register runs the registration pipeline, failing fast on the first
// violation: confirm-password check, uniqueness pre-checks, registry
// verification, hash, save, token. The pre-checks are advisory; the unique
// constraints enforced by Save are the real guarantee under races.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.Password != in.ConfirmPassword {
		return nil, apperr.PasswordMismatch()
	}

	checks := []struct {
		field  string
		value  string
		exists func(context.Context, string) (bool, error)
	}{
		{"nationalId", in.NationalID, s.Users.ExistsByNationalID},
		{"handle", in.Handle, s.Users.ExistsByHandle},
		{"phone", in.Phone, s.Users.ExistsByPhone},
		{"email", in.Email, s.Users.ExistsByEmail},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		taken, err := c.exists(ctx, c.value)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Duplicate(c.field)
		}
	}

	identity, err := s.Verifier.Verify(ctx, in.NationalID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInternal {
			err = apperr.IdentityLookup(err)
		}
		s.Logger.WithError(err).WithField("dni", in.NationalID).Warn("identity verification failed")
		return nil, err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = entity.RoleWorker
	}

	u := &entity.User{
		NationalID:      in.NationalID,
		GivenNames:      identity.GivenNames,
		PaternalSurname: identity.PaternalSurname,
		MaternalSurname: identity.MaternalSurname,
		FullName:        identity.FullName,
		Handle:          in.Handle,
		Password:        hash,
		Phone:           in.Phone,
		Email:           in.Email,
		Role:            role,
	}
	if err := s.Users.Save(ctx, u); err != nil {
		return nil, err
	}

	token, _, err := s.Tokens.Generate(u.NationalID)
	if err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "dni": u.NationalID}).Info("user registered")
	return s.result(u, token, "account created successfully"), nil
}

// Login accepts a single identifier that may be a national ID, a phone, a
// handle, or an email, tried in that order. The first record found wins; a
// password mismatch on it does not trigger a re-search with another
// strategy, and the error is the same whether the identifier was unknown or
// the password wrong.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	var u *entity.User
	var err error

	if dniRe.MatchString(identifier) {
		if u, err = s.Users.FindByNationalID(ctx, identifier); err != nil {
			return nil, err
		}
	}
	if u == nil && phoneRe.MatchString(identifier) {
		if u, err = s.Users.FindByPhone(ctx, identifier); err != nil {
			return nil, err
		}
	}
	if u == nil {
		if u, err = s.Users.FindByHandle(ctx, identifier); err != nil {
			return nil, err
		}
	}
	if u == nil {
		if u, err = s.Users.FindByEmail(ctx, identifier); err != nil {
			return nil, err
		}
	}
	if u == nil {
		return nil, apperr.InvalidCredentials()
	}

	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperr.InvalidCredentials()
	}

	token, _, err := s.Tokens.Generate(u.NationalID)
	if err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "dni": u.NationalID}).Info("login successful")
	return s.result(u, token, "login successful"), nil
}
