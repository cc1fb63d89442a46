package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/application"
	"github.com/Diego-Alvarez-1/ChambaInfo/internal/interface/middleware"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/response"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/validation"
)

type JobHandler struct {
	Jobs   *application.JobService
	Logger *logrus.Logger
}

func NewJobHandler(jobs *application.JobService, logger *logrus.Logger) *JobHandler {
	return &JobHandler{Jobs: jobs, Logger: logger}
}

type publishJobRequest struct {
	Title        string   `json:"title" binding:"required,min=5,max=100"`
	Description  string   `json:"description" binding:"required,max=2000"`
	ContactPhone string   `json:"contactPhone" binding:"omitempty,celular"`
	ShowPhone    bool     `json:"showPhone"`
	Location     string   `json:"location" binding:"required,max=100"`
	Salary       string   `json:"salary" binding:"omitempty,max=50"`
	RUC          string   `json:"ruc" binding:"omitempty,len=11,numeric"`
	Attachments  []string `json:"attachments" binding:"omitempty,max=5,dive,url"`
}

func (h *JobHandler) Publish(c *gin.Context) {
	var req publishJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "validation failed", validation.ToDetails(err))
		return
	}

	j, err := h.Jobs.Publish(c.Request.Context(), middleware.Subject(c), application.PublishJobInput{
		Title:        req.Title,
		Description:  req.Description,
		ContactPhone: req.ContactPhone,
		ShowPhone:    req.ShowPhone,
		Location:     req.Location,
		Salary:       req.Salary,
		RUC:          req.RUC,
		Attachments:  req.Attachments,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, newJobView(j, true), "job published", nil)
}

func (h *JobHandler) ListActive(c *gin.Context) {
	jobs, err := h.Jobs.ListActive(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newJobViews(jobs, false), "active jobs", nil)
}

func (h *JobHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	j, err := h.Jobs.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newJobView(j, false), "job", nil)
}

// ListByEmployer is the public listing of one employer's postings.
func (h *JobHandler) ListByEmployer(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	jobs, err := h.Jobs.ListByEmployerID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newJobViews(jobs, false), "employer jobs", nil)
}

// ListMine returns the calling employer's own postings, phone included.
func (h *JobHandler) ListMine(c *gin.Context) {
	jobs, err := h.Jobs.ListByEmployer(c.Request.Context(), middleware.Subject(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, newJobViews(jobs, true), "my jobs", nil)
}

func (h *JobHandler) Finish(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.Jobs.Finish(c.Request.Context(), middleware.Subject(c), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "job finished", nil)
}

func (h *JobHandler) Stats(c *gin.Context) {
	stats, err := h.Jobs.Stats(c.Request.Context(), middleware.Subject(c))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, stats, "employer stats", nil)
}

func (h *JobHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "validation failed", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Jobs.Search(c.Request.Context(), q, size)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}
