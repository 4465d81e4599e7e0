package dashboard

import (
	"fmt"
	"time"

	"github.com/viralit/client/internal/model"
)

// ViewModel is the render-ready dashboard. It is built once per load and
// never mutated afterwards.
type ViewModel struct {
	Metrics  model.DashboardMetrics `json:"metrics"`
	Upcoming []UpcomingUpload      `json:"upcoming"`
	LoadedAt time.Time             `json:"loaded_at"`
}

// UpcomingUpload is a scheduled upload with its display slot.
type UpcomingUpload struct {
	Upload model.Upload `json:"upload"`
	Hour   int          `json:"hour"`
	Minute string       `json:"minute"` // zero-padded
	Day    int          `json:"day"`
}

// Time returns the slot as H:MM.
func (u UpcomingUpload) Time() string {
	return fmt.Sprintf("%d:%s", u.Hour, u.Minute)
}

// NewUpcomingUpload derives the display slot of u in loc.
func NewUpcomingUpload(u model.Upload, loc *time.Location) UpcomingUpload {
	t := u.ScheduledFor.In(loc)
	return UpcomingUpload{
		Upload: u,
		Hour:   t.Hour(),
		Minute: fmt.Sprintf("%02d", t.Minute()),
		Day:    t.Day(),
	}
}

// buildView takes the first UpcomingLimit uploads as returned; the backend
// already orders and limits them.
func buildView(m *model.DashboardMetrics, uploads []model.Upload, loc *time.Location, now time.Time) *ViewModel {
	n := len(uploads)
	if n > UpcomingLimit {
		n = UpcomingLimit
	}
	upcoming := make([]UpcomingUpload, 0, n)
	for _, u := range uploads[:n] {
		upcoming = append(upcoming, NewUpcomingUpload(u, loc))
	}

	return &ViewModel{
		Metrics:  *m,
		Upcoming: upcoming,
		LoadedAt: now,
	}
}
