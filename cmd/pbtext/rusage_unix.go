//go:build unix

package main

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// peakRSS returns the process's peak resident set size in bytes.
func peakRSS() (int64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	rss := int64(ru.Maxrss)
	// Kilobytes everywhere except darwin.
	if runtime.GOOS != "darwin" {
		rss *= 1024
	}
	return rss, nil
}
