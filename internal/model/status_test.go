package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadStatusConstants(t *testing.T) {
	assert.Equal(t, UploadStatus("scheduled"), UploadScheduled)
	assert.Equal(t, UploadStatus("uploading"), UploadUploading)
	assert.Equal(t, UploadStatus("done"), UploadDone)
	assert.Equal(t, UploadStatus("failed"), UploadFailed)
	assert.Equal(t, UploadStatus("retry"), UploadRetry)
	assert.Equal(t, UploadStatus("paused"), UploadPaused)
	assert.Len(t, UploadStatuses, 6)
}

func TestUploadStatus_Valid(t *testing.T) {
	for _, s := range UploadStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, UploadStatus("").Valid())
	assert.False(t, UploadStatus("queued").Valid())
	assert.False(t, UploadStatus("DONE").Valid())
}

func TestParseUploadStatus(t *testing.T) {
	s, err := ParseUploadStatus("retry")
	require.NoError(t, err)
	assert.Equal(t, UploadRetry, s)

	_, err = ParseUploadStatus("archived")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archived")
}
