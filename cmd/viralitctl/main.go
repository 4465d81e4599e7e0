package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/viralit/client/internal/apiclient"
	"github.com/viralit/client/internal/dashboard"
	"github.com/viralit/client/internal/metrics"
	"github.com/viralit/client/internal/model"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "dashboard":
		cmdDashboard(os.Args[2:])
	case "watch":
		cmdWatch(os.Args[2:])
	case "uploads":
		cmdUploads(os.Args[2:])
	case "accounts":
		cmdAccounts(os.Args[2:])
	case "account":
		cmdAccount(os.Args[2:])
	case "set-status":
		cmdSetStatus(os.Args[2:])
	case "quota":
		cmdQuota(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// newFlagSet returns a flag set carrying the flags every command shares.
func newFlagSet(name string) (*flag.FlagSet, *string, *bool) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	configPath := fs.String("config", os.Getenv("VIRALIT_CONFIG"), "Path to a YAML profile (env: VIRALIT_CONFIG)")
	asJSON := fs.Bool("json", false, "Print raw JSON instead of a table")
	return fs, configPath, asJSON
}

func mustApp(configPath string) *app {
	a, err := newApp(configPath)
	if err != nil {
		fatal(err)
	}
	return a
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", describe(err))
	os.Exit(1)
}

// describe gives the user a short reason per error kind.
func describe(err error) string {
	var (
		be  *apiclient.BackendError
		te  *apiclient.TransportError
		iae *apiclient.InvalidArgumentError
	)
	switch {
	case errors.As(err, &iae):
		return iae.Error()
	case errors.As(err, &te):
		return fmt.Sprintf("backend unreachable (%s %s): %v", te.Method, te.Path, te.Err)
	case errors.As(err, &be) && be.Malformed:
		return fmt.Sprintf("backend sent an unexpected response for %s %s: %v", be.Method, be.Path, be.Err)
	case errors.As(err, &be):
		return fmt.Sprintf("backend returned %d for %s %s: %s", be.StatusCode, be.Method, be.Path, strings.TrimSpace(be.Body))
	}
	return err.Error()
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal(err)
	}
}

func cmdDashboard(args []string) {
	fs, configPath, asJSON := newFlagSet("dashboard")
	fs.Parse(args)

	a := mustApp(*configPath)
	agg := dashboard.NewAggregator(a.client, dashboard.WithAggregatorLogger(a.logger))

	res := agg.Load(context.Background())
	if !res.OK() {
		fatal(res.Err)
	}
	if *asJSON {
		printJSON(res.View)
		return
	}
	if err := dashboard.Render(os.Stdout, res.View); err != nil {
		fatal(err)
	}
}

func cmdWatch(args []string) {
	fs, configPath, _ := newFlagSet("watch")
	interval := fs.Duration("interval", 30*time.Second, "Refresh interval")
	fs.Parse(args)

	if *interval <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -interval must be positive")
		os.Exit(1)
	}

	a := mustApp(*configPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	agg := dashboard.NewAggregator(a.client, dashboard.WithAggregatorLogger(a.logger))
	presenter := dashboard.NewPresenter(agg, a.logger, a.metrics)

	if a.cfg.MetricsListenAddr != "" {
		srv := metrics.NewServer(a.cfg.MetricsListenAddr, a.registry, func() bool {
			return presenter.Current() != nil
		})
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error().Err(err).Msg("metrics server")
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
		a.logger.Info().Str("addr", a.cfg.MetricsListenAddr).Msg("metrics server listening")
	}

	var renderMu sync.Mutex
	refresh := func() {
		res := presenter.Refresh(ctx)
		if !res.OK() {
			if ctx.Err() == nil {
				fmt.Fprintf(os.Stderr, "Refresh failed, showing previous data: %s\n", describe(res.Err))
			}
			return
		}
		if res.Stale {
			return
		}
		renderMu.Lock()
		defer renderMu.Unlock()
		// Render whatever is current; a newer refresh may have landed meanwhile.
		fmt.Printf("\n== %s (generation %d)\n", time.Now().Format("15:04:05"), presenter.Generation())
		dashboard.Render(os.Stdout, presenter.Current())
	}

	// SIGHUP refreshes on demand, in addition to the ticker.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	go refresh()
	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			go refresh()
		case <-hup:
			go refresh()
		}
	}
}

func cmdUploads(args []string) {
	fs, configPath, asJSON := newFlagSet("uploads")
	accountID := fs.String("account", "", "Only uploads for this account ID")
	status := fs.String("status", "", "Only uploads in this status (scheduled, uploading, done, failed, retry, paused)")
	limit := fs.Int("limit", apiclient.DefaultUploadLimit, "Maximum number of uploads")
	fs.Parse(args)

	a := mustApp(*configPath)
	list, err := a.client.ListUploads(context.Background(), apiclient.ListUploadsParams{
		AccountID: *accountID,
		Status:    model.UploadStatus(*status),
		Limit:     *limit,
	})
	if err != nil {
		fatal(err)
	}
	if *asJSON {
		printJSON(list)
		return
	}

	if len(list.Uploads) == 0 {
		fmt.Println("No uploads found.")
		return
	}
	fmt.Printf("%-36s %-36s %-10s %-20s %s\n", "ID", "ACCOUNT", "STATUS", "SCHEDULED", "TITLE")
	for _, u := range list.Uploads {
		fmt.Printf("%-36s %-36s %-10s %-20s %s\n", u.ID, u.AccountID, u.Status, u.ScheduledFor.Local().Format("2006-01-02 15:04"), u.Title)
	}
	fmt.Printf("%d upload(s)\n", list.Count)
}

func cmdAccounts(args []string) {
	fs, configPath, asJSON := newFlagSet("accounts")
	fs.Parse(args)

	a := mustApp(*configPath)
	list, err := a.client.ListAccounts(context.Background())
	if err != nil {
		fatal(err)
	}
	if *asJSON {
		printJSON(list)
		return
	}

	if len(list.Accounts) == 0 {
		fmt.Println("No accounts connected.")
		return
	}
	fmt.Printf("%-36s %-24s %-16s %s\n", "ID", "NAME", "THEME", "STATE")
	for _, acc := range list.Accounts {
		fmt.Printf("%-36s %-24s %-16s %s\n", acc.ID, acc.DisplayName, acc.ThemeSlug, stateLabel(acc.Active))
	}
}

func cmdAccount(args []string) {
	fs, configPath, asJSON := newFlagSet("account")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: viralitctl account <account-id>")
		os.Exit(1)
	}

	a := mustApp(*configPath)
	acc, err := a.client.GetAccount(context.Background(), fs.Arg(0))
	if err != nil {
		fatal(err)
	}
	if *asJSON {
		printJSON(acc)
		return
	}

	channel := "-"
	if acc.ChannelID != nil {
		channel = *acc.ChannelID
	}
	fmt.Printf("ID:       %s\n", acc.ID)
	fmt.Printf("Name:     %s\n", acc.DisplayName)
	fmt.Printf("Channel:  %s\n", channel)
	fmt.Printf("Theme:    %s\n", acc.ThemeSlug)
	fmt.Printf("State:    %s\n", stateLabel(acc.Active))
}

func cmdSetStatus(args []string) {
	fs, configPath, _ := newFlagSet("set-status")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: viralitctl set-status <account-id> <active|paused>")
		os.Exit(1)
	}
	active, err := parseActive(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	a := mustApp(*configPath)
	res, err := a.client.UpdateAccountStatus(context.Background(), fs.Arg(0), active)
	if err != nil {
		fatal(err)
	}
	if !res.Success {
		fmt.Fprintln(os.Stderr, "Error: backend did not confirm the update")
		os.Exit(1)
	}
	fmt.Printf("Account %s is now %s\n", fs.Arg(0), stateLabel(active))
}

func cmdQuota(args []string) {
	fs, configPath, asJSON := newFlagSet("quota")
	fs.Parse(args)

	a := mustApp(*configPath)
	q, err := a.client.QuotaStatus(context.Background())
	if err != nil {
		fatal(err)
	}
	if *asJSON {
		printJSON(q)
		return
	}

	fmt.Printf("Total quota:        %d\n", q.TotalQuota)
	fmt.Printf("Used today:         %d\n", q.TotalUsed)
	fmt.Printf("Remaining:          %d\n", q.TotalRemaining)
	fmt.Printf("Uploads remaining:  %d\n", q.UploadsRemaining)
	fmt.Printf("Projects available: %d of %d\n", q.ProjectsAvailable, len(q.Projects))
	if len(q.Projects) > 0 {
		fmt.Println()
		fmt.Printf("%-36s %-24s %10s %10s\n", "ID", "PROJECT", "USED", "DAILY")
		for _, p := range q.Projects {
			fmt.Printf("%-36s %-24s %10d %10d\n", p.ID, p.ProjectName, p.QuotaUsedToday, p.DailyQuota)
		}
	}
}

func stateLabel(active bool) string {
	if active {
		return "active"
	}
	return "paused"
}

// parseActive accepts the words the dashboard uses as well as booleans.
func parseActive(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "active", "resume", "on":
		return true, nil
	case "paused", "pause", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid state %q: want active or paused", s)
	}
	return b, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage:
  viralitctl dashboard [-json]                         Show today's metrics and the next scheduled uploads
  viralitctl watch [-interval 30s]                     Keep the dashboard refreshed (SIGHUP refreshes now)
  viralitctl uploads [-account ID] [-status S] [-limit N] [-json]
  viralitctl accounts [-json]                          List connected accounts
  viralitctl account <account-id> [-json]              Show one account
  viralitctl set-status <account-id> <active|paused>   Pause or resume an account
  viralitctl quota [-json]                             Show quota across API projects

All commands accept -config <file> (env: VIRALIT_CONFIG).

Environment:
  VIRALIT_ENV           development (default) or production
  VIRALIT_API_URL       Override the backend address
  VIRALIT_HTTP_TIMEOUT  Per-request timeout, e.g. 15s (default: none)
  LOG_LEVEL             debug, info, warn, error
  METRICS_LISTEN_ADDR   Serve /metrics and /healthz while watching`)
}
