/*
main.go - Application entry point

PURPOSE:
  Command-line front end for the pay calculator. Runs the HTTP server for
  the browser editor and offers offline commands over backup files.

COMMANDS:
  serve      Start the HTTP server (state persisted in SQLite)
  summary    Print job and weekly totals for a backup file
  xlsx       Write the summary workbook for a backup file
  csv        Print the shifts of a backup file as CSV

ENVIRONMENT:
  PAYCALC_PORT, PAYCALC_DB, PAYCALC_SNAPSHOT_KEY, PAYCALC_AUTOSAVE_DELAY,
  PAYCALC_ALLOWED_ORIGINS. Flags override the environment.

SEE ALSO:
  - config/config.go: Environment defaults
  - api/server.go: Router configuration
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "paycalc",
	Short: "Part-time pay calculator",
	Long: `paycalc computes paid hours and pay for part-time shifts across
several jobs, applying each job's unpaid break policy.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(xlsxCmd)
	rootCmd.AddCommand(csvCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
