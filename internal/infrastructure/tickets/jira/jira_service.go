package jira

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	domainErrors "github.com/Tomas-vilte/issuegate/internal/domain/errors"
	"github.com/Tomas-vilte/issuegate/internal/domain/ports"
	appErrors "github.com/Tomas-vilte/issuegate/internal/errors"
	"github.com/Tomas-vilte/issuegate/internal/infrastructure/httpclient"
	"github.com/Tomas-vilte/issuegate/internal/logger"
)

const trackerName = "jira"

var _ ports.IssueTracker = (*JiraService)(nil)

// JiraService representa el servicio para consultar issues en la API de Jira.
type JiraService struct {
	baseURL   string
	apiKey    string
	jiraEmail string
	client    httpclient.HTTPClient
}

// NewJiraService crea una nueva instancia de JiraService.
func NewJiraService(baseURL, apiKey, email string, client httpclient.HTTPClient) *JiraService {
	return &JiraService{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		jiraEmail: email,
		client:    client,
	}
}

// Exists consulta si el issue existe. Solo 200 y 404 son respuestas
// definitivas; cualquier otra cosa se reporta como TrackerUnavailableError.
func (s *JiraService) Exists(ctx context.Context, issueID string) (bool, error) {
	endpoint := fmt.Sprintf("%s/rest/api/3/issue/%s?fields=summary", s.baseURL, url.PathEscape(issueID))

	resp, err := s.makeRequest(ctx, http.MethodGet, endpoint)
	if err != nil {
		return false, domainErrors.NewTrackerUnavailableError(trackerName, issueID, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		if err := resp.Body.Close(); err != nil {
			logger.Debug(ctx, "error closing jira response body", "error", err)
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		return false, domainErrors.NewTrackerUnavailableError(trackerName, issueID,
			appErrors.ErrTrackerAuth.WithContext("status", resp.Status))
	default:
		return false, domainErrors.NewTrackerUnavailableError(trackerName, issueID,
			fmt.Errorf("unexpected response from jira: %s", resp.Status))
	}
}

func (s *JiraService) makeRequest(ctx context.Context, method, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	auth := base64.StdEncoding.EncodeToString([]byte(s.jiraEmail + ":" + s.apiKey))
	req.Header.Add("Authorization", "Basic "+auth)
	req.Header.Add("Accept", "application/json")

	return s.client.Do(req)
}
