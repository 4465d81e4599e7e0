package model

import "fmt"

// UploadStatus is the backend-owned lifecycle state of an upload.
type UploadStatus string

// Upload status constants. The set is closed; anything else coming off the
// wire is a malformed payload.
const (
	UploadScheduled UploadStatus = "scheduled"
	UploadUploading UploadStatus = "uploading"
	UploadDone      UploadStatus = "done"
	UploadFailed    UploadStatus = "failed"
	UploadRetry     UploadStatus = "retry"
	UploadPaused    UploadStatus = "paused"
)

// UploadStatuses lists every valid UploadStatus in display order.
var UploadStatuses = []UploadStatus{
	UploadScheduled,
	UploadUploading,
	UploadDone,
	UploadFailed,
	UploadRetry,
	UploadPaused,
}

// Valid reports whether s is a member of the closed status set.
func (s UploadStatus) Valid() bool {
	switch s {
	case UploadScheduled, UploadUploading, UploadDone, UploadFailed, UploadRetry, UploadPaused:
		return true
	}
	return false
}

func (s UploadStatus) String() string { return string(s) }

// ParseUploadStatus converts a raw string into an UploadStatus, rejecting
// values outside the closed set.
func ParseUploadStatus(raw string) (UploadStatus, error) {
	s := UploadStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown upload status %q", raw)
	}
	return s, nil
}
