package model

// Account is a connected YouTube channel. Only Active may be changed by the
// client, and only through the status update endpoint.
type Account struct {
	ID          string  `json:"id" validate:"required"`
	DisplayName string  `json:"display_name"`
	ChannelID   *string `json:"channel_id,omitempty"`
	ThemeSlug   string  `json:"theme_slug" validate:"slug"`
	Active      bool    `json:"active"`
}

type AccountList struct {
	Accounts []Account `json:"accounts" validate:"dive"`
}

// StatusUpdate is the PATCH body for /accounts/{id}/status.
type StatusUpdate struct {
	Active bool `json:"active"`
}

type StatusUpdateResult struct {
	Success bool `json:"success"`
}
