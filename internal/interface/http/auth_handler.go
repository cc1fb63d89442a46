package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/application"
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/apperr"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/response"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/validation"
)

type AuthHandler struct {
	Auth     *application.AuthService
	Verifier application.IdentityVerifier
	Logger   *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, verifier application.IdentityVerifier, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Verifier: verifier, Logger: logger}
}

type registerRequest struct {
	NationalID      string `json:"nationalId" binding:"required,dni"`
	Handle          string `json:"handle" binding:"omitempty,handle"`
	Email           string `json:"email" binding:"omitempty,email"`
	Password        string `json:"password" binding:"required,pwd"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	Phone           string `json:"phone" binding:"omitempty,celular"`
	Role            string `json:"role" binding:"omitempty,rol"`
}

// Register creates an account. Payload shape errors come back as a
// field-to-message map; everything past binding goes through the domain
// error mapping.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}

	res, err := h.Auth.Register(c.Request.Context(), application.RegisterInput{
		NationalID:      req.NationalID,
		Handle:          req.Handle,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Phone:           req.Phone,
		Role:            entity.Role(req.Role),
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, res, res.Message, nil)
}

type loginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}

	res, err := h.Auth.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, res, res.Message, nil)
}

// VerifyDNI looks up a national ID in the registry without creating anything.
// Format errors never leave the process; an ID the registry cannot resolve is
// an absent resource here, so the generic verification message goes out as a
// 404. Registration keeps mapping the same failure to 400.
func (h *AuthHandler) VerifyDNI(c *gin.Context) {
	identity, err := h.Verifier.Verify(c.Request.Context(), c.Param("dni"))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindIdentityLookup {
			_, msg := apperr.Status(err)
			response.Error[any](c, http.StatusNotFound, msg, nil)
			return
		}
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, identity, "identity verified", nil)
}
