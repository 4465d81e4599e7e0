package model

// APIProject is a Google Cloud project whose daily YouTube quota is rotated
// across uploads.
type APIProject struct {
	ID             string `json:"id" validate:"required"`
	ProjectName    string `json:"project_name"`
	DailyQuota     int    `json:"daily_quota" validate:"min=0"`
	QuotaUsedToday int    `json:"quota_used_today" validate:"min=0"`
}

// Quota is a per-fetch snapshot across all API projects. TotalUsed +
// TotalRemaining is expected to equal TotalQuota but that is asserted by the
// backend and not checked here.
type Quota struct {
	TotalQuota        int          `json:"total_quota" validate:"min=0"`
	TotalUsed         int          `json:"total_used" validate:"min=0"`
	TotalRemaining    int          `json:"total_remaining" validate:"min=0"`
	ProjectsAvailable int          `json:"projects_available" validate:"min=0"`
	UploadsRemaining  int          `json:"uploads_remaining" validate:"min=0"`
	Projects          []APIProject `json:"projects" validate:"dive"`
}
