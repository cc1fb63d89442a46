package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/application"
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/interface/middleware"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/apperr"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/response"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/validation"
)

type ProfileHandler struct {
	Profiles *application.ProfileService
	Logger   *logrus.Logger
}

func NewProfileHandler(profiles *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Profiles: profiles, Logger: logger}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	u, err := h.Profiles.Get(c.Request.Context(), middleware.Subject(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newProfileView(u), "profile", nil)
}

type updateProfileRequest struct {
	Email          string `json:"email" binding:"omitempty,email"`
	Skills         string `json:"skills" binding:"omitempty,max=1000"`
	WorkExperience string `json:"workExperience" binding:"omitempty,max=2000"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}

	u, err := h.Profiles.Update(c.Request.Context(), middleware.Subject(c), application.UpdateProfileInput{
		Email:          req.Email,
		Skills:         req.Skills,
		WorkExperience: req.WorkExperience,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newProfileView(u), "profile updated", nil)
}

// UploadDocument receives a multipart file under "file" and stores it as the
// document kind named in the path.
func (h *ProfileHandler) UploadDocument(c *gin.Context) {
	kind := application.DocumentKind(c.Param("kind"))

	fh, err := c.FormFile("file")
	if err != nil {
		respondError(c, h.Logger, apperr.Format("a file is required"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	url, err := h.Profiles.UploadDocument(c.Request.Context(), middleware.Subject(c), kind, f, fh.Filename, contentType, fh.Size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"url": url}, "document uploaded", nil)
}

func (h *ProfileHandler) DeleteDocument(c *gin.Context) {
	kind := application.DocumentKind(c.Param("kind"))
	if err := h.Profiles.DeleteDocument(c.Request.Context(), middleware.Subject(c), kind); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "document removed", nil)
}
