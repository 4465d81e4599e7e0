package model

// DashboardMetrics is the composite served by /dashboard/metrics.
type DashboardMetrics struct {
	UploadsToday     int   `json:"uploads_today" validate:"min=0"`
	UploadsDone      int   `json:"uploads_done" validate:"min=0"`
	UploadsFailed    int   `json:"uploads_failed" validate:"min=0"`
	UploadsScheduled int   `json:"uploads_scheduled" validate:"min=0"`
	ActiveAccounts   int   `json:"active_accounts" validate:"min=0"`
	TotalAccounts    int   `json:"total_accounts" validate:"min=0"`
	Quota            Quota `json:"quota"`
}
