// Command ls-celestial is a terminal client showing where the Moon and Mars are.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-celestial/internal/celestial"
	"github.com/litescript/ls-celestial/internal/client"
	"github.com/litescript/ls-celestial/internal/ephem"
	"github.com/litescript/ls-celestial/internal/logging"
	"github.com/litescript/ls-celestial/internal/report"
	"github.com/litescript/ls-celestial/internal/state"
	"github.com/litescript/ls-celestial/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	watchInterval time.Duration
	snapshotPath  string
	nowMode       bool
	beepMode      bool
	eventsMode    bool
)

const (
	defaultRefresh = time.Minute
	minRefresh     = 5 * time.Second
	maxRefresh     = 30 * time.Minute
)

func main() {
	refresh := flag.Duration("refresh", defaultRefresh, "Data refresh interval (e.g., 30s, 5m)")
	logLevel := flag.String("log-level", "warn", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write logs to file (the TUI discards logs otherwise)")
	serverURL := flag.String("server", "", "celestiald base URL; empty computes locally")
	lunarTerms := flag.String("lunar-terms", "", "Lunar term table for local mode (default: embedded)")
	lat := flag.Float64("lat", 0, "Observer latitude in degrees")
	lon := flag.Float64("lon", 0, "Observer longitude in degrees")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat fetch at interval (e.g., 30s)")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON snapshot to file (use - for stdout)")
	flag.BoolVar(&nowMode, "now", false, "Single-line status mode")
	flag.BoolVar(&beepMode, "beep", false, "Beep on rise, set and degradation events (TTY only)")
	flag.BoolVar(&eventsMode, "events", false, "Show event log")
	flag.Parse()

	if *refresh < minRefresh {
		*refresh = minRefresh
	} else if *refresh > maxRefresh {
		*refresh = maxRefresh
	}

	headless := summaryMode || snapshotPath != "" || nowMode || eventsMode

	logger, closeLog, err := newLogger(*logLevel, *logFile, headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var loc *celestial.Location
	if flagSet("lat") || flagSet("lon") {
		loc = &celestial.Location{Latitude: *lat, Longitude: *lon}
	}

	source, label, err := newSource(*serverURL, *lunarTerms, loc, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = *refresh
	stateMgr := state.NewManager(stateCfg)

	if headless {
		runHeadless(ctx, source, stateMgr)
		return
	}

	p := tea.NewProgram(ui.New(stateMgr, label), tea.WithAltScreen(), tea.WithContext(ctx))

	go runFetchLoop(ctx, source, stateMgr, p, logger)

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to stderr in headless mode. The TUI owns the terminal,
// so it only logs when given a file.
func newLogger(level, path string, headless bool) (*slog.Logger, func(), error) {
	opts := logging.Options{Level: logging.ParseLevel(level), Format: "text"}
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		opts.Output = f
		return logging.New(opts), func() { _ = f.Close() }, nil
	case headless:
		return logging.New(opts), func() {}, nil
	default:
		return logging.Discard(), func() {}, nil
	}
}

func flagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// newSource picks the HTTP service or an in-process pipeline.
func newSource(serverURL, lunarTerms string, loc *celestial.Location, logger *slog.Logger) (client.Source, string, error) {
	if serverURL != "" {
		f := client.NewFetcher(client.WithBaseURL(serverURL), client.WithLocation(loc))
		return f, f.URL(), nil
	}

	oracles, err := ephem.LoadSet(ephem.Options{LunarTermsPath: lunarTerms}, logger)
	if err != nil {
		return nil, "", fmt.Errorf("load ephemeris: %w", err)
	}
	pipeline := celestial.NewPipeline(celestial.NewEngine(oracles), celestial.WithLogger(logger))
	return client.NewLocal(pipeline, loc), "local", nil
}

func runFetchLoop(ctx context.Context, source client.Source, stateMgr *state.Manager, p *tea.Program, logger *slog.Logger) {
	doFetch(ctx, source, stateMgr, p, logger)

	ticker := time.NewTicker(stateMgr.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("fetch loop shutting down")
			return
		case <-ticker.C:
			doFetch(ctx, source, stateMgr, p, logger)
		}
	}
}

func doFetch(ctx context.Context, source client.Source, stateMgr *state.Manager, p *tea.Program, logger *slog.Logger) {
	for _, kind := range celestial.Kinds {
		result := source.Fetch(ctx, kind)
		stateMgr.Update(result)

		if result.Error != nil {
			logger.Error("fetch failed", "body", kind.String(), "error", result.Error)
			p.Send(ui.ErrorMsg{Error: result.Error})
			continue
		}
		logger.Debug("fetch complete", "body", kind.String(), "duration", result.Duration)
	}
	p.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
}

// runHeadless handles all headless modes without starting TUI.
func runHeadless(ctx context.Context, source client.Source, stateMgr *state.Manager) {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	var lastEvent time.Time

	outputOnce := func() error {
		for _, kind := range celestial.Kinds {
			result := source.Fetch(ctx, kind)
			if result.Error != nil {
				return result.Error
			}
			stateMgr.Update(result)
		}
		snap := stateMgr.Snapshot()

		if nowMode {
			report.WriteNowPlaying(os.Stdout, snap)
			return nil
		}

		if snapshotPath != "" {
			if err := writeSnapshot(report.ExportSnapshot(snap)); err != nil {
				return err
			}
		}

		if summaryMode {
			report.WriteSummaryTable(os.Stdout, snap)
		}

		if eventsMode {
			fmt.Println()
			report.WriteEvents(os.Stdout, snap.Events, 10)
		}

		if n := len(snap.Events); n > 0 {
			latest := snap.Events[n-1].Timestamp
			if beepMode && isTTY && latest.After(lastEvent) {
				fmt.Print("\a")
			}
			lastEvent = latest
		}
		return nil
	}

	if watchInterval == 0 {
		if err := outputOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !nowMode {
				fmt.Println()
			}
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}

func writeSnapshot(export *report.SnapshotExport) error {
	if snapshotPath == "-" {
		if err := export.WriteJSON(os.Stdout); err != nil {
			return fmt.Errorf("write JSON to stdout: %w", err)
		}
		return nil
	}

	f, err := os.Create(snapshotPath)
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}
	defer f.Close()
	if err := export.WriteJSON(f); err != nil {
		return fmt.Errorf("write JSON to file: %w", err)
	}
	return nil
}
