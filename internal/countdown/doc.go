// Package countdown computes the time remaining until the birthday target
// instant and drives the once-per-second countdown tick.
package countdown
