package dashboard

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Render writes vm as plain text. A nil view renders as a loading
// placeholder.
func Render(w io.Writer, vm *ViewModel) error {
	if vm == nil {
		_, err := fmt.Fprintln(w, "Loading dashboard...")
		return err
	}

	m := vm.Metrics
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "UPLOADS TODAY\t%d\t%d completed\n", m.UploadsToday, m.UploadsDone)
	fmt.Fprintf(tw, "SCHEDULED\t%d\tpending uploads\n", m.UploadsScheduled)
	fmt.Fprintf(tw, "FAILED\t%d\t\n", m.UploadsFailed)
	fmt.Fprintf(tw, "ACTIVE ACCOUNTS\t%d\tof %d total\n", m.ActiveAccounts, m.TotalAccounts)
	fmt.Fprintf(tw, "QUOTA REMAINING\t%d\t%d projects\n", m.Quota.UploadsRemaining, m.Quota.ProjectsAvailable)
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "UPCOMING VIDEOS")
	if len(vm.Upcoming) == 0 {
		_, err := fmt.Fprintln(w, "  No videos scheduled")
		return err
	}

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, u := range vm.Upcoming {
		fmt.Fprintf(tw, "  %s\tday %d\t%s\n", u.Time(), u.Day, u.Upload.Title)
	}
	return tw.Flush()
}
