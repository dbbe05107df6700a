package pmpsdb

import "log"

var debugLogging bool

// SetDebugLogging toggles [DEBUG] protocol logging for the whole
// package. Warnings are always logged.
func SetDebugLogging(on bool) { debugLogging = on }

func debugf(format string, args ...any) {
	if debugLogging {
		log.Printf("[DEBUG] "+format, args...)
	}
}
