//go:build !darwin

package pasteboard

import (
	"fmt"
	"runtime"
)

func defaultService() (Service, error) {
	return nil, fmt.Errorf("NSPasteboard is not available on %s", runtime.GOOS)
}
