package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/apperr"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/response"
)

// respondError translates a domain error into the HTTP envelope. The status
// and client-safe message come from the central mapping; anything that maps
// to a 5xx is logged with its cause, which never reaches the client.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	status, msg := apperr.Status(err)
	if status >= 500 && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("request failed")
	}
	response.Error[any](c, status, msg, nil)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, nil, apperr.Format("invalid "+name))
		return 0, false
	}
	return id, true
}

type jobView struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ContactPhone   string    `json:"contactPhone,omitempty"`
	ShowPhone      bool      `json:"showPhone"`
	Location       string    `json:"location"`
	Salary         string    `json:"salary,omitempty"`
	RUC            string    `json:"ruc,omitempty"`
	Attachments    []string  `json:"attachments,omitempty"`
	Active         bool      `json:"active"`
	EmployerName   string    `json:"employerName"`
	EmployerHandle string    `json:"employerHandle,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// newJobView hides the contact phone unless the employer opted to show it or
// the viewer owns the posting.
func newJobView(j *entity.Job, asOwner bool) jobView {
	v := jobView{
		ID:             j.ID,
		Title:          j.Title,
		Description:    j.Description,
		ShowPhone:      j.ShowPhone,
		Location:       j.Location,
		Salary:         j.Salary,
		RUC:            j.RUC,
		Attachments:    j.Attachments,
		Active:         j.Active,
		EmployerName:   j.EmployerName,
		EmployerHandle: j.EmployerHandle,
		CreatedAt:      j.CreatedAt,
	}
	if j.ShowPhone || asOwner {
		v.ContactPhone = j.ContactPhone
	}
	return v
}

func newJobViews(jobs []*entity.Job, asOwner bool) []jobView {
	out := make([]jobView, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, newJobView(j, asOwner))
	}
	return out
}

type applicationView struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"jobId"`
	JobTitle    string    `json:"jobTitle"`
	WorkerName  string    `json:"workerName,omitempty"`
	WorkerDNI   string    `json:"workerDni,omitempty"`
	WorkerPhone string    `json:"workerPhone,omitempty"`
	Message     string    `json:"message,omitempty"`
	Status      string    `json:"status"`
	Seen        bool      `json:"seen"`
	CreatedAt   time.Time `json:"createdAt"`
}

// newApplicationView redacts worker identity fields unless the viewer is the
// employer reviewing the application.
func newApplicationView(a *entity.Application, forEmployer bool) applicationView {
	v := applicationView{
		ID:        a.ID,
		JobID:     a.JobID,
		JobTitle:  a.JobTitle,
		Message:   a.Message,
		Status:    string(a.Status),
		Seen:      a.Seen,
		CreatedAt: a.CreatedAt,
	}
	if forEmployer {
		v.WorkerName = a.WorkerName
		v.WorkerDNI = a.WorkerDNI
		v.WorkerPhone = a.WorkerPhone
	}
	return v
}

func newApplicationViews(apps []*entity.Application, forEmployer bool) []applicationView {
	out := make([]applicationView, 0, len(apps))
	for _, a := range apps {
		out = append(out, newApplicationView(a, forEmployer))
	}
	return out
}

type profileView struct {
	ID             int64     `json:"id"`
	NationalID     string    `json:"nationalId"`
	FullName       string    `json:"fullName"`
	Handle         string    `json:"handle,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Email          string    `json:"email,omitempty"`
	Role           string    `json:"role"`
	Skills         string    `json:"skills,omitempty"`
	WorkExperience string    `json:"workExperience,omitempty"`
	DNIFrontURL    string    `json:"dniFrontUrl,omitempty"`
	DNIBackURL     string    `json:"dniBackUrl,omitempty"`
	CertificateURL string    `json:"certificateUrl,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func newProfileView(u *entity.User) profileView {
	return profileView{
		ID:             u.ID,
		NationalID:     u.NationalID,
		FullName:       u.FullName,
		Handle:         u.Handle,
		Phone:          u.Phone,
		Email:          u.Email,
		Role:           string(u.Role),
		Skills:         u.Skills,
		WorkExperience: u.WorkExperience,
		DNIFrontURL:    u.DNIFrontURL,
		DNIBackURL:     u.DNIBackURL,
		CertificateURL: u.CertificateURL,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
