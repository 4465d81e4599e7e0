package model

type Upload struct {
	ID             string       `json:"id" validate:"required"`
	AccountID      string       `json:"account_id" validate:"required"`
	Status         UploadStatus `json:"status" validate:"upload_status"`
	ScheduledFor   Timestamp    `json:"scheduled_for"`
	Title          string       `json:"title"`
	YouTubeVideoID *string      `json:"youtube_video_id,omitempty"`
}

type UploadList struct {
	Uploads []Upload `json:"uploads" validate:"dive"`
	Count   int      `json:"count" validate:"min=0"`
}
