package listener

import "unique"

// intern returns the canonical copy of an event name so that many handles
// registered for the same event share one string.
func intern(name string) string {
	return unique.Make(name).Value()
}
