package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/knowbaseai/knowbase/client"
)

func newStatsCmd() *cobra.Command {
	var (
		includeDetails bool
		startStr       string
		endStr         string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show knowledge base statistics",
		Run: func(cmd *cobra.Command, args []string) {
			opts := &client.StatsOptions{IncludeDetails: includeDetails}

			var err error
			if opts.Start, err = parseDateFlag(startStr); err != nil {
				fatal("parse --start", err)
			}
			if opts.End, err = parseDateFlag(endStr); err != nil {
				fatal("parse --end", err)
			}

			report, err := apiClient.Stats(context.Background(), opts)
			if err != nil {
				fatal("get stats", err)
			}

			if report.TotalItems == 0 {
				fmt.Println(report.Message)
				return
			}

			if flagFmt == "table" {
				printStatsTable(report)
				return
			}
			output(report, fmt.Sprintf("%d", report.TotalItems))
		},
	}

	cmd.Flags().BoolVar(&includeDetails, "details", false, "Include the detailed breakdown")
	cmd.Flags().StringVar(&startStr, "start", "", "Only count documents created on or after this date (YYYY-MM-DD or RFC 3339)")
	cmd.Flags().StringVar(&endStr, "end", "", "Only count documents created on or before this date (YYYY-MM-DD or RFC 3339)")
	return cmd
}

func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected RFC 3339 or YYYY-MM-DD", s)
	}
	return t, nil
}

func printStatsTable(report *client.StatsReport) {
	fmt.Printf("Total items: %d\n", report.TotalItems)
	if report.AverageQualityScore != nil {
		fmt.Printf("Average quality: %.3f\n", *report.AverageQualityScore)
	}
	if report.ByQualityRange != nil {
		fmt.Printf("Quality buckets: high=%d medium=%d low=%d\n",
			report.ByQualityRange.High, report.ByQualityRange.Medium, report.ByQualityRange.Low)
	}
	fmt.Println()

	if len(report.BySource) > 0 {
		formatTable([]string{"SOURCE", "COUNT"}, sortedCountRows(report.BySource))
		fmt.Println()
	}
	if len(report.ByContentType) > 0 {
		formatTable([]string{"CONTENT TYPE", "COUNT"}, sortedCountRows(report.ByContentType))
		fmt.Println()
	}
	if len(report.TagFrequency) > 0 {
		formatTable([]string{"TAG", "COUNT"}, sortedCountRows(report.TagFrequency))
	}

	if report.DetailedBreakdown != nil && len(report.DetailedBreakdown.TopQualityItems) > 0 {
		fmt.Println()
		headers := []string{"ID", "TITLE", "SOURCE", "QUALITY"}
		var rows [][]string
		for _, item := range report.DetailedBreakdown.TopQualityItems {
			rows = append(rows, []string{item.ID, item.Title, item.Source, fmt.Sprintf("%.2f", item.QualityScore)})
		}
		formatTable(headers, rows)
	}
}

// sortedCountRows renders a count map as table rows, highest count first and
// ties broken by key for stable output.
func sortedCountRows(counts map[string]int) [][]string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, fmt.Sprintf("%d", counts[k])})
	}
	return rows
}
