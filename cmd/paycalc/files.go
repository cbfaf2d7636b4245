package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/elriot/part-time-pay-calculator/api"
	"github.com/elriot/part-time-pay-calculator/csvio"
	"github.com/elriot/part-time-pay-calculator/payroll"
	"github.com/elriot/part-time-pay-calculator/reconcile"
	"github.com/elriot/part-time-pay-calculator/report"
)

var (
	summaryFile   string
	summaryFormat string
	xlsxFile      string
	xlsxOut       string
	csvFile       string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print job and weekly totals for a backup file",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

var xlsxCmd = &cobra.Command{
	Use:   "xlsx",
	Short: "Write the summary workbook for a backup file",
	Args:  cobra.NoArgs,
	RunE:  runXLSX,
}

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Print the shifts of a backup file as CSV",
	Args:  cobra.NoArgs,
	RunE:  runCSV,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryFile, "file", "", "Backup JSON file (required)")
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "text", "Output format: text, json")
	_ = summaryCmd.MarkFlagRequired("file")

	xlsxCmd.Flags().StringVar(&xlsxFile, "file", "", "Backup JSON file (required)")
	xlsxCmd.Flags().StringVar(&xlsxOut, "out", "paycalc.xlsx", "Output workbook path")
	_ = xlsxCmd.MarkFlagRequired("file")

	csvCmd.Flags().StringVar(&csvFile, "file", "", "Backup JSON file (required)")
	_ = csvCmd.MarkFlagRequired("file")
}

// loadBackup reads and reconciles a backup file the same way a restore does.
func loadBackup(path string) (payroll.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return payroll.Snapshot{}, err
	}
	snap, err := reconcile.Restore(raw)
	if err != nil {
		return payroll.Snapshot{}, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	snap, err := loadBackup(summaryFile)
	if err != nil {
		return err
	}

	switch summaryFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(api.Summarize(snap))
	case "text":
		return printSummary(cmd.OutOrStdout(), snap, payroll.ComputeAggregates(snap))
	default:
		return fmt.Errorf("unknown format %q (want text or json)", summaryFormat)
	}
}

func printSummary(out io.Writer, snap payroll.Snapshot, agg payroll.Aggregates) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "JOB\tNAME\tHOURS\tPAY")
	for _, id := range agg.JobOrder {
		name := payroll.DefaultJobName(id)
		if job, ok := snap.Job(id); ok {
			name = job.Name
		}
		t := agg.ByJob[id]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", id, name, payroll.FormatHours(t.Hours), payroll.FormatMoney(snap.Currency, t.Pay))
	}
	fmt.Fprintf(tw, "\tOverall\t%s\t%s\n", payroll.FormatHours(agg.Totals.Hours), payroll.FormatMoney(snap.Currency, agg.Totals.Pay))

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "WEEK\tSCHEDULED\tPAID\tPAY")
	for _, w := range agg.WeeklyTotals {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			w.Week.Label("Unknown"),
			payroll.FormatHours(w.ScheduledHours),
			payroll.FormatHours(w.Hours),
			payroll.FormatMoney(snap.Currency, w.Pay))
	}
	return tw.Flush()
}

func runXLSX(cmd *cobra.Command, args []string) error {
	snap, err := loadBackup(xlsxFile)
	if err != nil {
		return err
	}
	data, err := report.Writer{}.WorkbookXLSX(snap, payroll.ComputeAggregates(snap))
	if err != nil {
		return err
	}
	if err := os.WriteFile(xlsxOut, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", xlsxOut)
	return nil
}

func runCSV(cmd *cobra.Command, args []string) error {
	snap, err := loadBackup(csvFile)
	if err != nil {
		return err
	}
	return csvio.Export(cmd.OutOrStdout(), snap)
}
