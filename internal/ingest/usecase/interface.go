package usecase

import (
	"context"

	"jobtrail-backend/internal/ingest/classify"
)

// IngestResult aggregates one batch run. SkippedBy counts dropped
// messages per reason; UsedQuery echoes the mailbox search that was
// actually issued.
type IngestResult struct {
	Imported  int            `json:"imported"`
	Scanned   int            `json:"scanned"`
	SkippedBy map[string]int `json:"skippedBy"`
	UsedQuery string         `json:"usedQuery"`
}

// DiagnoseRow is the per-message classifier breakdown returned by the
// diagnose endpoint.
type DiagnoseRow struct {
	ID      string         `json:"id"`
	Subject string         `json:"subject"`
	From    string         `json:"from"`
	Preview string         `json:"preview"`
	Flags   classify.Flags `json:"flags"`
}

// IngestUsecase runs the inbox-to-tracker pipeline for one user.
type IngestUsecase interface {
	IngestForUser(ctx context.Context, userID string, days, limit int) (*IngestResult, error)
	Diagnose(ctx context.Context, userID string) ([]DiagnoseRow, error)
}
