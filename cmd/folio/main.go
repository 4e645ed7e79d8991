// folio is a portfolio data engine.
// It fetches a developer profile and repositories, mines READMEs for
// technology keywords, and serves search and statistics over a local API.
package main

import (
	"os"

	"github.com/corey/folio/cmd/folio/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
