package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/application"
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/interface/middleware"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/response"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/validation"
)

type ApplicationHandler struct {
	Applications *application.ApplicationService
	Logger       *logrus.Logger
}

func NewApplicationHandler(apps *application.ApplicationService, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{Applications: apps, Logger: logger}
}

type applyRequest struct {
	Message string `json:"message" binding:"omitempty,max=500"`
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}

	a, err := h.Applications.Apply(c.Request.Context(), middleware.Subject(c), jobID, req.Message)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, newApplicationView(a, false), "application sent", nil)
}

// HasApplied lets the UI grey out the apply button.
func (h *ApplicationHandler) HasApplied(c *gin.Context) {
	jobID, ok := pathID(c, "id")
	if !ok {
		return
	}
	applied, err := h.Applications.HasApplied(c.Request.Context(), middleware.Subject(c), jobID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"applied": applied}, "application status", nil)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	apps, err := h.Applications.ListMine(c.Request.Context(), middleware.Subject(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newApplicationViews(apps, false), "my applications", nil)
}

func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	jobID, ok := pathID(c, "id")
	if !ok {
		return
	}
	apps, err := h.Applications.ListByJob(c.Request.Context(), middleware.Subject(c), jobID)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newApplicationViews(apps, true), "job applications", nil)
}

type statusRequest struct {
	Status string `json:"status" binding:"required,oneof=ACCEPTED REJECTED"`
}

func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}

	err := h.Applications.UpdateStatus(c.Request.Context(), middleware.Subject(c), id, entity.ApplicationStatus(req.Status))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "application updated", nil)
}

func (h *ApplicationHandler) MarkSeen(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Applications.MarkSeen(c.Request.Context(), middleware.Subject(c), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "application seen", nil)
}
