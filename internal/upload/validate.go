package upload

import (
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/facelapse/internal/models"
	"github.com/desertthunder/facelapse/internal/shared"
)

// DefaultMaxBytes is the aggregate selection budget (150 MiB).
const DefaultMaxBytes int64 = 150 * shared.BytesPerMiB

// User-visible messages.
const (
	MsgNoFilesSelected   = "You did not select a folder."
	MsgSizeLimitExceeded = "Total upload size exceeds the %s MB limit. Your selection is %s MB."
	MsgNoValidFiles      = "No valid JPG or JPEG files found in the selected folder."
	MsgServerRejected    = "Upload failed"
	MsgMalformedResponse = "Video path not found in response."
	MsgNetworkFailure    = "Upload failed: the processing service could not be reached."
	MsgUploading         = "Uploading %d photos..."
	MsgGenerating        = "Generating video... this may take a moment."
)

var eligibleExts = []string{".jpg", ".jpeg"}

// Failure is a rejected selection or a failed upload attempt.
type Failure struct {
	Err        error  // One of the shared selection or upload sentinels
	Message    string // Text shown to the user
	TotalBytes int64  // Raw selection size, set for size failures
	Cause      error  // Underlying error, if any
}

// Error leaves out the sentinel when the cause already names it.
func (f *Failure) Error() string {
	switch {
	case f.Cause == nil:
		return fmt.Sprintf("%v: %s", f.Err, f.Message)
	case errors.Is(f.Cause, f.Err):
		return fmt.Sprintf("%s: %v", f.Message, f.Cause)
	default:
		return fmt.Sprintf("%v: %s: %v", f.Err, f.Message, f.Cause)
	}
}

func (f *Failure) Unwrap() []error {
	if f.Cause != nil {
		return []error{f.Err, f.Cause}
	}
	return []error{f.Err}
}

// IsEligible reports whether name ends in .jpg or .jpeg, ignoring case.
func IsEligible(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range eligibleExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Validate applies the selection rules in order and returns the first failure, or the eligible files.
//
// The size check counts every selected file, including the ones the extension filter later drops.
func Validate(sel models.Selection, budget int64) models.Outcome {
	if budget <= 0 {
		budget = DefaultMaxBytes
	}

	out := models.Outcome{TotalBytes: sel.TotalBytes()}

	if len(sel) == 0 {
		out.Reason = &Failure{Err: shared.ErrNoFilesSelected, Message: MsgNoFilesSelected}
		return out
	}

	if out.TotalBytes > budget {
		out.Reason = &Failure{
			Err:        shared.ErrSizeLimitExceeded,
			Message:    fmt.Sprintf(MsgSizeLimitExceeded, formatLimit(budget), shared.FormatMiB(out.TotalBytes)),
			TotalBytes: out.TotalBytes,
		}
		return out
	}

	for _, f := range sel {
		if IsEligible(f.Name) {
			out.Files = append(out.Files, f)
		} else {
			out.Skipped = append(out.Skipped, f)
		}
	}

	if len(out.Files) == 0 {
		out.Reason = &Failure{Err: shared.ErrNoValidFiles, Message: MsgNoValidFiles}
	}
	return out
}

// Report builds the dry-run listing of sel for folder.
func Report(folder string, sel models.Selection, budget int64) models.SelectionReport {
	if budget <= 0 {
		budget = DefaultMaxBytes
	}

	outcome := Validate(sel, budget)
	report := models.SelectionReport{
		Folder:      folder,
		Entries:     make([]models.ReportEntry, 0, len(sel)),
		TotalBytes:  outcome.TotalBytes,
		BudgetBytes: budget,
		Accepted:    outcome.Accepted(),
	}

	for _, f := range sel {
		eligible := IsEligible(f.Name)
		if eligible {
			report.EligibleCount++
		}
		report.Entries = append(report.Entries, models.ReportEntry{Name: f.Name, Size: f.Size, Eligible: eligible})
	}

	if f, ok := outcome.Reason.(*Failure); ok {
		report.Reason = f.Message
	}
	return report
}

// formatLimit renders the budget in whole MiB when it divides evenly.
func formatLimit(budget int64) string {
	if budget%shared.BytesPerMiB == 0 {
		return fmt.Sprintf("%d", budget/shared.BytesPerMiB)
	}
	return shared.FormatMiB(budget)
}
