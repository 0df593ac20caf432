package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show ingestion history",
		Run: func(cmd *cobra.Command, args []string) {
			history, err := apiClient.Ingestion.History(context.Background())
			if err != nil {
				fatal("get ingestion history", err)
			}
			output(history, "")
		},
	}
}
