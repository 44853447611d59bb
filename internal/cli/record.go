package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/gomemo/internal/api/request"
	"github.com/mcoot/gomemo/internal/api/response"
	"github.com/mcoot/gomemo/internal/model"
)

func newRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "record",
		Aliases: []string{"records"},
		Short:   "Manage imported game records",
	}

	cmd.AddCommand(newRecordImportCmd())
	cmd.AddCommand(newRecordListCmd())
	cmd.AddCommand(newRecordShowCmd())
	cmd.AddCommand(newRecordDeleteCmd())
	cmd.AddCommand(newRecordResultsCmd())

	return cmd
}

func newRecordImportCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import <file.sgf>",
		Short: "Import an SGF file",
		Long: `Import an SGF game record. Use - to read the record from stdin.

Importing the same game twice returns the existing record.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
				if name == "" {
					name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				}
			}
			if err != nil {
				return fmt.Errorf("failed to read record: %w", err)
			}

			var record model.GameRecord
			req := request.ImportRecordRequest{Name: name, SGF: string(data)}
			if err := client.Post("/api/v1/records", req, &record); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(record)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (defaults to the game name or file name)")

	return cmd
}

func newRecordListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List imported records",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.RecordList
			if err := client.Get("/api/v1/records", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newRecordShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <record-id>",
		Short: "Show a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var record model.GameRecord
			if err := client.Get("/api/v1/records/"+args[0], &record); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(record)
			return nil
		},
	}
}

func newRecordDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <record-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a record and its replay history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/records/" + args[0]); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Record deleted")
			return nil
		},
	}
}

func newRecordResultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results <record-id>",
		Short: "Show completed replays of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.ResultList
			if err := client.Get("/api/v1/records/"+args[0]+"/results", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
