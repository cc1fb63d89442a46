package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/application"
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/infrastructure/reniec"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/apperr"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/helpers"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/validation"
)

// stubUsers holds at most one account and matches it by any identifier.
type stubUsers struct {
	u     *entity.User
	saved []*entity.User
}

func (s *stubUsers) match(v string) *entity.User {
	if s.u != nil && (s.u.NationalID == v || s.u.Handle == v || s.u.Phone == v || s.u.Email == v) {
		return s.u
	}
	return nil
}

func (s *stubUsers) Save(_ context.Context, u *entity.User) error {
	u.ID = int64(len(s.saved) + 1)
	s.saved = append(s.saved, u)
	return nil
}

func (s *stubUsers) FindByID(_ context.Context, id int64) (*entity.User, error) {
	if s.u != nil && s.u.ID == id {
		return s.u, nil
	}
	return nil, nil
}

func (s *stubUsers) FindByNationalID(_ context.Context, v string) (*entity.User, error) {
	return s.match(v), nil
}
func (s *stubUsers) FindByHandle(_ context.Context, v string) (*entity.User, error) {
	return s.match(v), nil
}
func (s *stubUsers) FindByPhone(_ context.Context, v string) (*entity.User, error) {
	return s.match(v), nil
}
func (s *stubUsers) FindByEmail(_ context.Context, v string) (*entity.User, error) {
	return s.match(v), nil
}
func (s *stubUsers) ExistsByNationalID(_ context.Context, v string) (bool, error) {
	return s.match(v) != nil, nil
}
func (s *stubUsers) ExistsByHandle(_ context.Context, v string) (bool, error) {
	return s.match(v) != nil, nil
}
func (s *stubUsers) ExistsByPhone(_ context.Context, v string) (bool, error) {
	return s.match(v) != nil, nil
}
func (s *stubUsers) ExistsByEmail(_ context.Context, v string) (bool, error) {
	return s.match(v) != nil, nil
}

type stubVerifier struct {
	identity *entity.Identity
	err      error
}

func (s *stubVerifier) Verify(_ context.Context, dni string) (*entity.Identity, error) {
	if err := reniec.ValidateNumber(dni); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	id := *s.identity
	id.DocumentNumber = dni
	return &id, nil
}

type envelope struct {
	Status  int               `json:"status"`
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func newAuthRouter(t *testing.T, users *stubUsers, verifier application.IdentityVerifier) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	tokens := helpers.NewTokenManager("test-secret", time.Hour)
	svc := application.NewAuthService(users, verifier, tokens, logger)
	h := NewAuthHandler(svc, verifier, logger)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	api.GET("/auth/verificar-dni/:dni", h.VerifyDNI)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func verifiedJuan() *stubVerifier {
	return &stubVerifier{identity: &entity.Identity{
		GivenNames:      "JUAN",
		PaternalSurname: "PEREZ",
		MaternalSurname: "GOMEZ",
		FullName:        "JUAN PEREZ GOMEZ",
	}}
}

func TestRegisterEndpointCreatesAccount(t *testing.T) {
	r := newAuthRouter(t, &stubUsers{}, verifiedJuan())

	w, env := doJSON(r, http.MethodPost, "/api/auth/register", `{
		"nationalId": "12345678",
		"handle": "juanp24",
		"password": "secret1",
		"confirmPassword": "secret1",
		"phone": "987654321"
	}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	var data struct {
		Token    string `json:"token"`
		Type     string `json:"type"`
		FullName string `json:"fullName"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, "Bearer", data.Type)
	assert.Equal(t, "JUAN PEREZ GOMEZ", data.FullName)
}

func TestRegisterEndpointRejectsMalformedPayload(t *testing.T) {
	r := newAuthRouter(t, &stubUsers{}, verifiedJuan())

	w, env := doJSON(r, http.MethodPost, "/api/auth/register", `{
		"nationalId": "1234",
		"password": "secret1",
		"confirmPassword": "secret1"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "must be an 8-digit national ID", env.Error["nationalId"])
}

func TestRegisterEndpointDuplicateNationalID(t *testing.T) {
	existing := &entity.User{ID: 1, NationalID: "12345678", Role: entity.RoleWorker}
	r := newAuthRouter(t, &stubUsers{u: existing}, verifiedJuan())

	w, env := doJSON(r, http.MethodPost, "/api/auth/register", `{
		"nationalId": "12345678",
		"password": "secret1",
		"confirmPassword": "secret1"
	}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, env.Message, "nationalId")
}

func TestLoginEndpointSameMessageForUnknownAndWrongPassword(t *testing.T) {
	hash, err := helpers.HashPassword("secret1")
	require.NoError(t, err)
	known := &entity.User{ID: 1, NationalID: "12345678", Handle: "juanp24", Password: hash, Role: entity.RoleWorker}
	r := newAuthRouter(t, &stubUsers{u: known}, verifiedJuan())

	wUnknown, envUnknown := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"identifier": "nobody", "password": "secret1"}`)
	wWrong, envWrong := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"identifier": "juanp24", "password": "wrongpw"}`)

	assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wWrong.Code)
	assert.Equal(t, envUnknown.Message, envWrong.Message)
	assert.Empty(t, envUnknown.Error)
}

func TestVerifyDNIEndpointFormatError(t *testing.T) {
	r := newAuthRouter(t, &stubUsers{}, verifiedJuan())

	w, env := doJSON(r, http.MethodGet, "/api/auth/verificar-dni/12AB", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Message, "8 digits")
}

func TestVerifyDNIEndpointLookupFailureIsNotFound(t *testing.T) {
	verifier := &stubVerifier{err: apperr.IdentityLookup(assert.AnError)}
	r := newAuthRouter(t, &stubUsers{}, verifier)

	w, env := doJSON(r, http.MethodGet, "/api/auth/verificar-dni/12345678", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "could not verify the ID, check it is correct", env.Message)
	assert.NotContains(t, env.Message, "assert.AnError")
}

// The same lookup failure during registration stays a 400; only the lookup
// endpoint treats an unresolvable ID as an absent resource.
func TestRegisterEndpointLookupFailureStays400(t *testing.T) {
	verifier := &stubVerifier{err: apperr.IdentityLookup(assert.AnError)}
	r := newAuthRouter(t, &stubUsers{}, verifier)

	w, env := doJSON(r, http.MethodPost, "/api/auth/register", `{
		"nationalId": "12345678",
		"password": "secret1",
		"confirmPassword": "secret1",
		"phone": "987654321"
	}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "could not verify the ID, check it is correct", env.Message)
}
