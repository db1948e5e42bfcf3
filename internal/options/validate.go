// Package options provides shared checks for tool and command inputs.
package options

import "fmt"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources reports, per source, whether it was set. noSourceMsg and
// multiSourceMsg are the errors for zero and several sources.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	n := 0
	for _, set := range sources {
		if set {
			n++
		}
	}
	switch {
	case n == 0:
		return fmt.Errorf("%s", noSourceMsg)
	case n > 1:
		return fmt.Errorf("%s", multiSourceMsg)
	}
	return nil
}
