package application

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
	repo "github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/repository"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/apperr"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/helpers"
)

// DocumentKind names the uploadable verification documents.
type DocumentKind string

const (
	DocumentDNIFront    DocumentKind = "dni-front"
	DocumentDNIBack     DocumentKind = "dni-back"
	DocumentCertificate DocumentKind = "certificate"
)

const (
	maxImageBytes    = 5 << 20
	maxDocumentBytes = 10 << 20
)

// ProfileService exposes the authenticated user's own profile and document
// uploads.
type ProfileService struct {
	Users     repo.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewProfileService(users repo.UserRepository, gcs *storage.Client, bucket string, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Users: users, GCS: gcs, GCSBucket: bucket, Logger: logger}
}

func (s *ProfileService) Get(ctx context.Context, subject string) (*entity.User, error) {
	return findUserBySubject(ctx, s.Users, subject)
}

type UpdateProfileInput struct {
	Email          string
	Skills         string
	WorkExperience string
}

// Update changes the editable profile fields. Identity fields (names and
// national ID) come from the registry and are immutable here.
func (s *ProfileService) Update(ctx context.Context, subject string, in UpdateProfileInput) (*entity.User, error) {
	u, err := findUserBySubject(ctx, s.Users, subject)
	if err != nil {
		return nil, err
	}
	if in.Email != "" && in.Email != u.Email {
		taken, err := s.Users.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Duplicate("email")
		}
		u.Email = in.Email
	}
	u.Skills = in.Skills
	u.WorkExperience = in.WorkExperience

	if err := s.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	s.Logger.WithField("user_id", u.ID).Info("profile updated")
	return u, nil
}

// UploadDocument stores a verification document in object storage and pins
// its URL on the profile. DNI sides accept JPEG/PNG up to 5MB; the work
// certificate also accepts PDF, up to 10MB.
func (s *ProfileService) UploadDocument(ctx context.Context, subject string, kind DocumentKind, r io.Reader, filename, contentType string, size int64) (string, error) {
	u, err := findUserBySubject(ctx, s.Users, subject)
	if err != nil {
		return "", err
	}
	if err := validateDocument(kind, contentType, size); err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", fmt.Errorf("object storage not configured")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("documents", u.NationalID, string(kind), uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("document upload failed")
		return "", err
	}

	switch kind {
	case DocumentDNIFront:
		u.DNIFrontURL = url
	case DocumentDNIBack:
		u.DNIBackURL = url
	case DocumentCertificate:
		u.CertificateURL = url
	}
	if err := s.Users.Save(ctx, u); err != nil {
		return "", err
	}

	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "kind": kind}).Info("document uploaded")
	return url, nil
}

// DeleteDocument unpins a document from the profile. The object itself is
// left in the bucket; uploads are immutable audit material.
func (s *ProfileService) DeleteDocument(ctx context.Context, subject string, kind DocumentKind) error {
	u, err := findUserBySubject(ctx, s.Users, subject)
	if err != nil {
		return err
	}
	switch kind {
	case DocumentDNIFront:
		u.DNIFrontURL = ""
	case DocumentDNIBack:
		u.DNIBackURL = ""
	case DocumentCertificate:
		u.CertificateURL = ""
	default:
		return apperr.Format("unknown document kind")
	}
	return s.Users.Save(ctx, u)
}

func validateDocument(kind DocumentKind, contentType string, size int64) error {
	switch kind {
	case DocumentDNIFront, DocumentDNIBack:
		if contentType != "image/jpeg" && contentType != "image/png" {
			return apperr.Format("document must be a JPEG or PNG image")
		}
		if size > maxImageBytes {
			return apperr.Format("document must not exceed 5MB")
		}
	case DocumentCertificate:
		if contentType != "image/jpeg" && contentType != "image/png" && contentType != "application/pdf" {
			return apperr.Format("certificate must be a JPEG, PNG, or PDF file")
		}
		if size > maxDocumentBytes {
			return apperr.Format("certificate must not exceed 10MB")
		}
	default:
		return apperr.Format("unknown document kind")
	}
	return nil
}
