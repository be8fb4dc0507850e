// Package banner renders the CLI startup banner.
package banner

import "fmt"

const art = `
  _
 | |__  _ __ ___  _ __ ___
 | '_ \| '_ ' _ \| '_ ' _ \
 | | | | | | | | | | | | | |
 |_| |_|_| |_| |_|_| |_| |_|
`

// Banner returns the banner followed by the version line.
func Banner(version string) string {
	return fmt.Sprintf("%s\n  hidden Markov model decoder %s\n\n", art, version)
}
