package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Tomas-vilte/issuegate/internal/domain/models"
	appErrors "github.com/Tomas-vilte/issuegate/internal/errors"
	"github.com/Tomas-vilte/issuegate/internal/i18n"
	"github.com/fatih/color"
)

var (
	// Colors for different message types
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Accent  = color.New(color.FgMagenta, color.Bold)
	Dim     = color.New(color.FgHiBlack)

	SuccessEmoji = Success.Sprint("✅")
	WarningEmoji = Warning.Sprint("⚠️")
	ErrorEmoji   = Error.Sprint("❌")
	InfoEmoji    = Info.Sprint("ℹ️")
)

func PrintSuccess(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", SuccessEmoji, Success.Sprint(msg))
}

func PrintError(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", ErrorEmoji, Error.Sprint(msg))
}

func PrintWarning(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", WarningEmoji, Warning.Sprint(msg))
}

func PrintInfo(w io.Writer, msg string) {
	_, _ = fmt.Fprintf(w, "%s %s\n", InfoEmoji, Info.Sprint(msg))
}

func PrintKeyValue(w io.Writer, key, value string) {
	keyColored := Dim.Sprint(key + ":")
	valueColored := color.New(color.FgWhite, color.Bold).Sprint(value)
	_, _ = fmt.Fprintf(w, "   %s %s\n", keyColored, valueColored)
}

// PrintValidation shows the outcome of a validation followed by every message.
func PrintValidation(w io.Writer, commit models.Commit, messages []models.ValidationMessage, rejected bool, t *i18n.Translations) {
	data := map[string]interface{}{
		"Commit": commit.ShortID(),
		"Count":  len(messages),
	}

	switch {
	case rejected:
		PrintError(w, t.GetMessage("check.rejected", 0, data))
	case len(messages) > 0:
		PrintWarning(w, t.GetMessage("check.accepted_with_notes", len(messages), data))
	default:
		PrintSuccess(w, t.GetMessage("check.accepted", 0, data))
	}

	for _, msg := range messages {
		printMessage(w, msg, rejected && msg.IsBlockingCandidate(), t)
	}
}

func printMessage(w io.Writer, msg models.ValidationMessage, blocking bool, t *i18n.Translations) {
	label := Warning.Sprint(t.GetMessage("severity.advisory", 0, nil))
	if blocking {
		label = Error.Sprint(t.GetMessage("severity.blocking", 0, nil))
	}

	_, _ = fmt.Fprintf(w, "\n%s: %s\n", label, color.New(color.Bold).Sprint(msg.Synopsis))
	for _, line := range strings.Split(msg.Details, "\n") {
		_, _ = fmt.Fprintf(w, "  %s\n", line)
	}
}

// HandleAppError handles an application error and displays it in a friendly way.
// If translations is nil, it will use English defaults.
func HandleAppError(w io.Writer, err error, t *i18n.Translations) {
	if err == nil {
		return
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		_, _ = fmt.Fprintln(w)
		_, _ = Error.Fprintf(w, "❌ %s: %s\n", appErr.Type, appErr.Message)

		if appErr.Err != nil {
			_, _ = Dim.Fprintf(w, "   Details: %v\n", appErr.Err)
		}
		for _, key := range []string{"commit", "path", "revision", "repository", "tracker", "address"} {
			if v, ok := appErr.Context[key]; ok {
				_, _ = Dim.Fprintf(w, "   %s: %v\n", key, v)
			}
		}

		if appErr.Suggestion != "" {
			_, _ = fmt.Fprintln(w)
			tryPrefix := "💡 Try: "
			if t != nil {
				tryPrefix = t.GetMessage("ui_error.try_suggestion", 0, nil)
			}
			_, _ = Info.Fprint(w, tryPrefix)
			for i, line := range strings.Split(appErr.Suggestion, "\n") {
				if i == 0 {
					_, _ = fmt.Fprintln(w, line)
				} else {
					_, _ = fmt.Fprintf(w, "       %s\n", line)
				}
			}
		}
		_, _ = fmt.Fprintln(w)
		return
	}

	PrintError(w, err.Error())
}
