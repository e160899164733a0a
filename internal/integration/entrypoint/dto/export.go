package dto

// ExportSummaryRequest represents the request body for a period export.
// Format is one of text, markdown or png; empty uses the configured default.
type ExportSummaryRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Format    string `json:"format,omitempty"`
	Password  string `json:"password" binding:"required"`
}

// ArchiveTransactionsRequest represents the request body for archiving old transactions.
type ArchiveTransactionsRequest struct {
	Months    int     `json:"months,omitempty"`
	CreatedBy *string `json:"created_by,omitempty" binding:"omitempty,uuid"`
}

// ArchiveTransactionsResponse represents the result of an archive run.
type ArchiveTransactionsResponse struct {
	Cutoff          string `json:"cutoff"`
	ClientsArchived int    `json:"clients_archived"`
	Deleted         int64  `json:"deleted"`
}
