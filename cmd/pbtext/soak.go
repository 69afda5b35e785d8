package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/tinyrange/clip"
)

// soakResult summarizes a soak run.
type soakResult struct {
	Iterations int
	RSSBefore  int64
	RSSAfter   int64
}

func (r soakResult) String() string {
	return fmt.Sprintf("iterations=%d peak_rss_before=%d peak_rss_after=%d growth=%d",
		r.Iterations, r.RSSBefore, r.RSSAfter, r.RSSAfter-r.RSSBefore)
}

func runSoak(cb clipboard, cfg Config, args []string, stdout, progress io.Writer) error {
	fs := flag.NewFlagSet("soak", flag.ContinueOnError)
	n := fs.Int("n", cfg.SoakIterations, "Number of write/read round-trips")
	size := fs.Int("size", 1024, "Payload size in bytes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *n <= 0 {
		return fmt.Errorf("-n must be positive")
	}

	res, err := soak(cb, *n, *size, progress)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, res)
	return nil
}

// soak writes and reads back n payloads, then restores the clipboard's
// original text if it had any.
func soak(cb clipboard, n, size int, progress io.Writer) (soakResult, error) {
	saved, err := cb.ReadText()
	hadText := err == nil
	if err != nil && !errors.Is(err, clip.ErrNoTextContent) {
		return soakResult{}, fmt.Errorf("read original text: %w", err)
	}
	defer func() {
		if !hadText {
			return
		}
		if err := cb.WriteText(saved); err != nil {
			slog.Warn("failed to restore clipboard", "error", err)
		}
	}()

	payload := strings.Repeat("é", size/2)
	res := soakResult{Iterations: n}

	res.RSSBefore, err = peakRSS()
	if err != nil {
		slog.Debug("peak RSS unavailable", "error", err)
	}

	bar := progressbar.NewOptions(n,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("soak"),
		progressbar.OptionShowCount(),
	)
	defer bar.Close()

	for i := range n {
		want := fmt.Sprintf("%d %s", i, payload)
		if err := cb.WriteText(want); err != nil {
			return res, fmt.Errorf("iteration %d: %w", i, err)
		}
		got, err := cb.ReadText()
		if err != nil {
			return res, fmt.Errorf("iteration %d: %w", i, err)
		}
		if got != want {
			return res, fmt.Errorf("iteration %d: read back %d bytes, wrote %d", i, len(got), len(want))
		}
		bar.Add(1)
	}

	res.RSSAfter, _ = peakRSS()
	return res, nil
}
