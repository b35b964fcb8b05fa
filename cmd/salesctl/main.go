// Package main is the entry point of the salesctl administration client.
//
// It starts the CLI and passes the build version and date down to the
// command layer.
package main

import "github.com/pdv-labs/api-sales/internal/admin/cli"

var (
	// buildVersion is set at build time; defaults to "dev".
	buildVersion = "dev"
	// buildDate is set at build time; defaults to "unknown".
	buildDate = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
