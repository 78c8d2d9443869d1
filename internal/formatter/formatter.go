// package formatter renders selection reports in various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/desertthunder/facelapse/internal/models"
	"github.com/desertthunder/facelapse/internal/shared"
)

// Supported report formats.
const (
	FormatText     = "text"
	FormatCSV      = "csv"
	FormatMarkdown = "md"
	FormatJSON     = "json"
)

// Formats lists the accepted values for the check command's --format flag.
var Formats = []string{FormatText, FormatCSV, FormatMarkdown, FormatJSON}

// ReportToCSV converts a SelectionReport to CSV format with columns: Name, Size, Eligible
func ReportToCSV(report *models.SelectionReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Name", "Size", "Eligible"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range report.Entries {
		record := []string{
			entry.Name,
			strconv.FormatInt(entry.Size, 10),
			strconv.FormatBool(entry.Eligible),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ReportToMarkdown converts a SelectionReport to a Markdown summary followed by a file table
func ReportToMarkdown(report *models.SelectionReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", report.Folder)
	fmt.Fprintf(&buf, "**Files**: %d\n", len(report.Entries))
	fmt.Fprintf(&buf, "**Eligible**: %d\n", report.EligibleCount)
	fmt.Fprintf(&buf, "**Total**: %s MB of %s MB\n", shared.FormatMiB(report.TotalBytes), shared.FormatMiB(report.BudgetBytes))
	fmt.Fprintf(&buf, "**Result**: %s\n\n", verdict(report))

	buf.WriteString("## Files\n\n")
	buf.WriteString("| Name | Size | Eligible |\n")
	buf.WriteString("| --- | ---: | :---: |\n")
	for _, entry := range report.Entries {
		mark := ""
		if entry.Eligible {
			mark = "yes"
		}
		fmt.Fprintf(&buf, "| %s | %d | %s |\n", entry.Name, entry.Size, mark)
	}

	return buf.Bytes(), nil
}

// ReportToText converts a SelectionReport to plain text format
func ReportToText(report *models.SelectionReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Folder: %s\n", report.Folder)
	fmt.Fprintf(&buf, "Files: %d (%d eligible)\n", len(report.Entries), report.EligibleCount)
	fmt.Fprintf(&buf, "Total: %s MB of %s MB\n", shared.FormatMiB(report.TotalBytes), shared.FormatMiB(report.BudgetBytes))
	fmt.Fprintf(&buf, "Result: %s\n\n", verdict(report))

	for i, entry := range report.Entries {
		mark := " "
		if entry.Eligible {
			mark = "*"
		}
		fmt.Fprintf(&buf, "%s %d. %s (%d bytes)\n", mark, i+1, entry.Name, entry.Size)
	}

	return buf.Bytes(), nil
}

// ReportToJSON converts a SelectionReport to indented JSON
func ReportToJSON(report *models.SelectionReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// Render converts a SelectionReport to the named format.
func Render(report *models.SelectionReport, format string) ([]byte, error) {
	switch format {
	case FormatText, "":
		return ReportToText(report)
	case FormatCSV:
		return ReportToCSV(report)
	case FormatMarkdown:
		return ReportToMarkdown(report)
	case FormatJSON:
		return ReportToJSON(report)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (expected one of %v)", shared.ErrInvalidFlag, format, Formats)
	}
}

// WriteReport renders a SelectionReport and writes it to path, creating parent directories as needed.
func WriteReport(report *models.SelectionReport, format, path string) (string, error) {
	data, err := Render(report, format)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}

func verdict(report *models.SelectionReport) string {
	if report.Accepted {
		return "ready to upload"
	}
	return "rejected: " + report.Reason
}
