package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validUpload() Upload {
	return Upload{
		ID:           "u-1",
		AccountID:    "a-1",
		Status:       UploadScheduled,
		ScheduledFor: Timestamp{time.Date(2025, 3, 1, 9, 5, 0, 0, time.UTC)},
		Title:        "Night drive",
	}
}

func TestValidate_Upload(t *testing.T) {
	require.NoError(t, Validate(validUpload()))

	u := validUpload()
	u.Status = "archived"
	err := Validate(u)
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "status", verrs[0].Field())
	assert.Equal(t, "upload_status", verrs[0].Tag())
}

func TestValidate_UploadMissingSchedule(t *testing.T) {
	u := validUpload()
	u.ScheduledFor = Timestamp{}
	err := Validate(u)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scheduled_for")
}

func TestValidate_UploadListDives(t *testing.T) {
	bad := validUpload()
	bad.AccountID = ""
	list := UploadList{Uploads: []Upload{validUpload(), bad}, Count: 2}

	err := Validate(list)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account_id")
}

func TestValidate_AccountThemeSlug(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"gaming", true},
		{"roblox-edits", true},
		{"asmr_2", true},
		{"", false},
		{"Gaming", false},
		{"2fast", false},
		{"with space", false},
	}
	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			err := Validate(Account{ID: "a-1", ThemeSlug: tt.slug})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_AccountListDives(t *testing.T) {
	list := AccountList{Accounts: []Account{{ID: "", ThemeSlug: "gaming"}}}
	require.Error(t, Validate(list))
}

func TestValidate_DashboardMetricsNegativeCounters(t *testing.T) {
	m := DashboardMetrics{UploadsToday: 4, TotalAccounts: 2}
	require.NoError(t, Validate(m))

	m.UploadsFailed = -1
	require.Error(t, Validate(m))

	m.UploadsFailed = 0
	m.Quota.UploadsRemaining = -3
	require.Error(t, Validate(m))
}

func TestValidate_QuotaSumNotChecked(t *testing.T) {
	q := Quota{TotalQuota: 10000, TotalUsed: 1600, TotalRemaining: 1}
	assert.NoError(t, Validate(q))
}

func TestValidate_QuotaProjects(t *testing.T) {
	q := Quota{Projects: []APIProject{{ID: "p-1", DailyQuota: 10000, QuotaUsedToday: -5}}}
	require.Error(t, Validate(q))
}

func TestDecodeAccount_OptionalChannel(t *testing.T) {
	var acc Account
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a-1","display_name":"Clips","channel_id":null,"theme_slug":"gaming","active":true}`), &acc))
	assert.Nil(t, acc.ChannelID)
	assert.True(t, acc.Active)

	require.NoError(t, json.Unmarshal([]byte(`{"id":"a-2","display_name":"Edits","channel_id":"UCabc","theme_slug":"gaming","active":false}`), &acc))
	require.NotNil(t, acc.ChannelID)
	assert.Equal(t, "UCabc", *acc.ChannelID)
}
