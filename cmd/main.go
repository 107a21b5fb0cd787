package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "insider-scanner",
	Short: "A CLI for the Insider Scanner services",
	Long: `Insider Scanner watches congressional disclosures, SEC Form 4 filings and prediction markets,
and alerts when independent sources agree on a ticker. Run cmd/scanner-service to serve and cmd/migrate to manage the schema.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
