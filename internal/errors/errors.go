package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeTracker       ErrorType = "TRACKER"
	TypeGit           ErrorType = "GIT"
	TypeValidation    ErrorType = "VALIDATION"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if path, ok := e.Context["path"].(string); ok && path != "" {
			msg += fmt.Sprintf(" - %s", path)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// Is matches AppErrors of the same type and message, so sentinels survive WithError.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Git errors
var (
	ErrNotInGitRepo = NewAppError(TypeGit, "Not in a git repository", nil).
			WithSuggestion("Run the command inside a repository or pass --repo <path>")

	ErrCommitNotFound = NewAppError(TypeGit, "Failed to resolve commit", nil).
				WithSuggestion("Check the revision exists: git log --oneline -1 <revision>")

	ErrGetHead = NewAppError(TypeGit, "Failed to resolve HEAD", nil).
			WithSuggestion("Make sure the repository has at least one commit: git log")

	ErrExtractRepoInfo = NewAppError(TypeGit, "Failed to extract repository info", nil).
				WithSuggestion("Add a remote (git remote add origin <url>) or pass --repository <name>")
)

// Configuration errors
var (
	ErrConfigMissing = NewAppError(TypeConfiguration, "Configuration is missing", nil).
				WithSuggestion("Initialize configuration: issuegate config init")

	ErrConfigInvalid = NewAppError(TypeConfiguration, "Configuration is invalid", nil).
				WithSuggestion("Review the file printed by: issuegate config show")

	ErrTrackerNotConfigured = NewAppError(TypeConfiguration, "Issue tracker is not configured", nil).
				WithSuggestion("Set active_tracker and tracker_providers in the configuration file")
)

// Tracker errors
var (
	ErrTrackerNotSupported = NewAppError(TypeTracker, "Issue tracker provider not supported", nil).
				WithSuggestion("Supported trackers: jira, github")

	ErrTrackerAuth = NewAppError(TypeTracker, "Issue tracker rejected the credentials", nil).
			WithSuggestion("Verify the API key or token in tracker_providers")
)

// Validation errors
var (
	ErrCommitRejected = NewAppError(TypeValidation, "Commit rejected by issue association policy", nil).
				WithSuggestion("Reference an existing issue in the commit message: git commit --amend")
)

// Server errors
var (
	ErrServerStart = NewAppError(TypeInternal, "Failed to start validation server", nil).
			WithSuggestion("Check that the listen address is free: issuegate serve --addr :8089")
)
