// Package osutils inspects the process environment for conditions that limit global
// input capture.
package osutils

// CaptureWarnings returns human-readable reasons why capture may miss input on this
// host. An empty result means nothing is known to be in the way.
func CaptureWarnings() []string {
	return platformWarnings()
}
