package models

// ReportEntry describes one file of a dry-run selection.
type ReportEntry struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	Eligible bool   `json:"eligible"`
}

// SelectionReport summarizes how a selection would be validated without uploading it.
type SelectionReport struct {
	Folder        string        `json:"folder"`
	Entries       []ReportEntry `json:"entries"`
	TotalBytes    int64         `json:"total_bytes"`
	BudgetBytes   int64         `json:"budget_bytes"`
	EligibleCount int           `json:"eligible_count"`
	Accepted      bool          `json:"accepted"`
	Reason        string        `json:"reason,omitempty"`
}
