package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/knowbaseai/knowbase/client"
)

func newDocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc",
		Short: "Manage knowledge documents",
	}
	cmd.AddCommand(docCreateCmd())
	cmd.AddCommand(docGetCmd())
	cmd.AddCommand(docDeleteCmd())
	cmd.AddCommand(docListCmd())
	cmd.AddCommand(docIngestCmd())
	return cmd
}

func docCreateCmd() *cobra.Command {
	var (
		source      string
		contentType string
		content     string
		quality     float64
		tags        []string
	)
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a document",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			req := &client.CreateDocumentRequest{
				Title:        args[0],
				Source:       source,
				ContentType:  contentType,
				Content:      content,
				QualityScore: quality,
				Tags:         tags,
			}
			doc, err := apiClient.Documents.Create(context.Background(), req)
			if err != nil {
				fatal("create document", err)
			}
			output(doc, doc.ID)
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Document source")
	cmd.Flags().StringVar(&contentType, "content-type", "", "Content type")
	cmd.Flags().StringVar(&content, "content", "", "Document content")
	cmd.Flags().Float64Var(&quality, "quality", 0, "Quality score in [0,1]")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	return cmd
}

func docGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a document by ID",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doc, err := apiClient.Documents.Get(context.Background(), args[0])
			if err != nil {
				fatal("get document", err)
			}
			output(doc, doc.ID)
		},
	}
}

func docDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := apiClient.Documents.Delete(context.Background(), args[0]); err != nil {
				fatal("delete document", err)
			}
			fmt.Println("deleted")
		},
	}
}

func docListCmd() *cobra.Command {
	var (
		source      string
		contentType string
		limit       int
		offset      int
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents",
		Run: func(cmd *cobra.Command, args []string) {
			if limit < 0 {
				fmt.Fprintf(os.Stderr, "Error: --limit must be non-negative\n")
				os.Exit(1)
			}
			if offset < 0 {
				fmt.Fprintf(os.Stderr, "Error: --offset must be non-negative\n")
				os.Exit(1)
			}
			opts := &client.DocumentListOptions{
				Source:      source,
				ContentType: contentType,
				Limit:       limit,
				Offset:      offset,
			}
			docs, _, err := apiClient.Documents.List(context.Background(), opts)
			if err != nil {
				fatal("list documents", err)
			}
			if flagFmt == "table" {
				headers := []string{"ID", "TITLE", "SOURCE", "TYPE", "QUALITY"}
				var rows [][]string
				for _, d := range docs {
					rows = append(rows, []string{d.ID, d.Title, d.Source, d.ContentType, fmt.Sprintf("%.2f", d.QualityScore)})
				}
				formatTable(headers, rows)
				return
			}
			if flagFmt == "quiet" {
				for _, d := range docs {
					fmt.Println(d.ID)
				}
				return
			}
			output(docs, "")
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "Filter by source")
	cmd.Flags().StringVar(&contentType, "content-type", "", "Filter by content type")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max results")
	cmd.Flags().IntVar(&offset, "offset", 0, "Offset")
	return cmd
}

func docIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <file.json>",
		Short: "Bulk-ingest documents from a JSON array file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			data, err := os.ReadFile(args[0])
			if err != nil {
				fatal("read file", err)
			}
			var docs []client.CreateDocumentRequest
			if err := json.Unmarshal(data, &docs); err != nil {
				fatal("parse file", err)
			}
			written, err := apiClient.Documents.BulkIngest(context.Background(), docs)
			if err != nil {
				fatal("bulk ingest", err)
			}
			output(map[string]int{"written": written}, fmt.Sprintf("%d", written))
		},
	}
}
