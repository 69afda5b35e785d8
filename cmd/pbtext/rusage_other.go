//go:build !unix

package main

import "errors"

func peakRSS() (int64, error) {
	return 0, errors.New("getrusage not supported")
}
