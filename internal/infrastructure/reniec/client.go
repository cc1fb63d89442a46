package reniec

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Diego-Alvarez-1/ChambaInfo/internal/domain/entity"
	"github.com/Diego-Alvarez-1/ChambaInfo/pkg/apperr"
)

var numberRe = regexp.MustCompile(`^[0-9]{8}$`)

// ValidateNumber checks the national-ID shape without touching the network.
func ValidateNumber(nationalID string) error {
	if !numberRe.MatchString(nationalID) {
		return apperr.Format("national ID must be exactly 8 digits")
	}
	return nil
}

// Client queries the RENIEC registry for the legal name attached to a
// national ID. Single attempt, bounded timeout; upstream failures are
// reduced to a generic user-safe error and the detail only logged.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
	Logger  *logrus.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, logger *logrus.Logger) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

// lookupResponse is the upstream JSON schema. Some responses only carry the
// concatenated full_name, others only the split fields.
type lookupResponse struct {
	FirstName      string `json:"first_name"`
	FirstLastName  string `json:"first_last_name"`
	SecondLastName string `json:"second_last_name"`
	FullName       string `json:"full_name"`
	DocumentNumber string `json:"document_number"`
}

func (c *Client) Verify(ctx context.Context, nationalID string) (*entity.Identity, error) {
	if err := ValidateNumber(nationalID); err != nil {
		return nil, err
	}

	endpoint := c.BaseURL + "?numero=" + url.QueryEscape(nationalID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperr.IdentityLookup(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if c.Logger != nil {
			c.Logger.WithError(err).WithField("dni", nationalID).Error("registry lookup failed")
		}
		return nil, apperr.IdentityLookup(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		if c.Logger != nil {
			c.Logger.WithFields(logrus.Fields{"dni": nationalID, "status": resp.StatusCode}).Error("registry returned non-OK status")
		}
		return nil, apperr.IdentityLookup(fmt.Errorf("registry status %d", resp.StatusCode))
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, apperr.IdentityLookup(err)
	}

	id := normalize(nationalID, body)
	if id.FullName == "" {
		return nil, apperr.IdentityLookup(fmt.Errorf("registry response missing name data"))
	}
	return id, nil
}

// normalize reconciles the two upstream shapes so callers can always read
// FullName and, when available, the split name fields.
func normalize(nationalID string, body lookupResponse) *entity.Identity {
	full := strings.TrimSpace(body.FullName)
	if full == "" {
		full = strings.TrimSpace(strings.Join([]string{
			strings.TrimSpace(body.FirstName),
			strings.TrimSpace(body.FirstLastName),
			strings.TrimSpace(body.SecondLastName),
		}, " "))
		full = strings.Join(strings.Fields(full), " ")
	}
	doc := strings.TrimSpace(body.DocumentNumber)
	if doc == "" {
		doc = nationalID
	}
	return &entity.Identity{
		GivenNames:      strings.TrimSpace(body.FirstName),
		PaternalSurname: strings.TrimSpace(body.FirstLastName),
		MaternalSurname: strings.TrimSpace(body.SecondLastName),
		FullName:        full,
		DocumentNumber:  doc,
	}
}
