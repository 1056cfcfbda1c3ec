package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/hupe1980/odorsearch"
	"github.com/spf13/cobra"
)

func newReportsCmd() *cobra.Command {
	var uri string

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Inspect archived run reports",
	}
	cmd.PersistentFlags().StringVar(&uri, "archive", "", "archive uri (file://, s3://, minio://)")
	_ = cmd.MarkPersistentFlagRequired("archive")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List archived reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openStore(cmd.Context(), uri)
			if err != nil {
				return err
			}
			names, err := odorsearch.ListReports(cmd.Context(), store)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print an archived report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cmd.Context(), uri)
			if err != nil {
				return err
			}
			report, err := odorsearch.LoadReport(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}
