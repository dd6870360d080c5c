package models

// UploadSummary describes a decoded ledger file
type UploadSummary struct {
	Filename      string   `json:"filename"`
	SheetNames    []string `json:"sheet_names"`
	FirstSheet    *string  `json:"first_sheet"`
	Columns       []string `json:"columns"`
	RowCountExact int      `json:"row_count_exact"`
	Resolved      []string `json:"resolved_roles"`
	Missing       []string `json:"missing_roles"`
}
