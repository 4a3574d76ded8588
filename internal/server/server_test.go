package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Tomas-vilte/issuegate/internal/domain/models"
	"github.com/Tomas-vilte/issuegate/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCommitValidator struct {
	mock.Mock
}

func (m *MockCommitValidator) Check(ctx context.Context, commit models.Commit) models.Verdict {
	args := m.Called(ctx, commit)
	return args.Get(0).(models.Verdict)
}

func (m *MockCommitValidator) Validate(ctx context.Context, commit models.Commit) ([]models.ValidationMessage, error) {
	args := m.Called(ctx, commit)
	return args.Get(0).([]models.ValidationMessage), args.Error(1)
}

const validBody = `{"repository":"payments","ref":"refs/heads/main","commit_id":"abc123","message":"PAY-1 fix"}`

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleValidate(t *testing.T) {
	expectedCommit := models.Commit{Repository: "payments", Ref: "refs/heads/main", ID: "abc123", Message: "PAY-1 fix"}

	t.Run("accepted", func(t *testing.T) {
		validator := new(MockCommitValidator)
		verdict := models.Accepted(nil)
		verdict.Policy = models.PolicyMandatory
		validator.On("Check", mock.Anything, expectedCommit).Return(verdict)
		srv := New(validator, metrics.New())

		rec := doRequest(t, srv.Handler(), http.MethodPost, "/v1/validate", validBody)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		var resp ValidateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Accepted)
		assert.Equal(t, models.VerdictAccepted, resp.Verdict)
		assert.Equal(t, "MANDATORY", resp.Policy)
		assert.Empty(t, resp.Messages)
		validator.AssertExpectations(t)
	})

	t.Run("rejected", func(t *testing.T) {
		validator := new(MockCommitValidator)
		verdict := models.Rejected([]models.ValidationMessage{{
			Synopsis: "Non-existing issue ids referenced in commit message",
			Details:  "The issue-ids\n    * PAY-1\n...",
			Severity: models.SeverityBlockingCandidate,
			Cause:    models.OutcomeDoesNotExist,
		}})
		verdict.Policy = models.PolicyMandatory
		validator.On("Check", mock.Anything, expectedCommit).Return(verdict)
		srv := New(validator, metrics.New())

		rec := doRequest(t, srv.Handler(), http.MethodPost, "/v1/validate", validBody)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var resp ValidateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Accepted)
		require.Len(t, resp.Messages, 1)
		assert.Equal(t, models.SeverityBlockingCandidate, resp.Messages[0].Severity)
		assert.NotContains(t, rec.Body.String(), "Cause")
	})

	t.Run("suggested policy only annotates", func(t *testing.T) {
		validator := new(MockCommitValidator)
		verdict := models.Accepted([]models.ValidationMessage{{
			Synopsis: "Non-existing issue ids referenced in commit message",
			Severity: models.SeverityBlockingCandidate,
			Cause:    models.OutcomeDoesNotExist,
		}})
		verdict.Policy = models.PolicySuggested
		validator.On("Check", mock.Anything, expectedCommit).Return(verdict)
		srv := New(validator, metrics.New())

		rec := doRequest(t, srv.Handler(), http.MethodPost, "/v1/validate", validBody)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp ValidateResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Accepted)
		require.Len(t, resp.Messages, 1)
		assert.Equal(t, models.SeverityAdvisory, resp.Messages[0].Severity)
		assert.NotContains(t, rec.Body.String(), "blocking-candidate")
	})

	t.Run("invalid json", func(t *testing.T) {
		validator := new(MockCommitValidator)
		srv := New(validator, nil)

		rec := doRequest(t, srv.Handler(), http.MethodPost, "/v1/validate", `{"repository":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid request body")
		validator.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
	})

	t.Run("missing fields", func(t *testing.T) {
		validator := new(MockCommitValidator)
		srv := New(validator, nil)

		rec := doRequest(t, srv.Handler(), http.MethodPost, "/v1/validate", `{"message":"PAY-1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "repository, ref, commit_id")
	})

	t.Run("wrong method", func(t *testing.T) {
		srv := New(new(MockCommitValidator), nil)

		rec := doRequest(t, srv.Handler(), http.MethodGet, "/v1/validate", "")

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHealthz(t *testing.T) {
	srv := New(new(MockCommitValidator), nil)

	rec := doRequest(t, srv.Handler(), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	validator := new(MockCommitValidator)
	verdict := models.Accepted(nil)
	verdict.Policy = models.PolicySuggested
	verdict.Classifications = []models.Classification{{Reference: "PAY-1", Outcome: models.OutcomeExists}}
	validator.On("Check", mock.Anything, mock.Anything).Return(verdict)
	srv := New(validator, metrics.New())

	doRequest(t, srv.Handler(), http.MethodPost, "/v1/validate", validBody)
	rec := doRequest(t, srv.Handler(), http.MethodGet, "/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `issuegate_validations_total{policy="SUGGESTED",verdict="accepted"} 1`)
	assert.Contains(t, rec.Body.String(), `issuegate_issue_checks_total{outcome="exists"} 1`)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	srv := New(new(MockCommitValidator), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, srv.ListenAndServe(ctx, "127.0.0.1:0"))
}
