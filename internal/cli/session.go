package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/gomemo/internal/api/request"
	"github.com/mcoot/gomemo/internal/api/response"
)

func sessionPath(suffix string) (string, error) {
	id, err := cfg.RequireSession()
	if err != nil {
		return "", err
	}
	return "/api/v1/sessions/" + id + suffix, nil
}

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the current study session",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionShowCmd())
	cmd.AddCommand(newSessionBoardCmd())
	cmd.AddCommand(newSessionCloseCmd())

	return cmd
}

func newSessionCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <record-id>",
		Short: "Open a session on a record and make it current",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session
			req := request.CreateSessionRequest{RecordID: args[0]}
			if err := client.Post("/api/v1/sessions", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveSession(result.ID); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := sessionPath("")
			if err != nil {
				return err
			}

			var result response.Session
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSessionBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board <move>",
		Short: "Show the board after a given move (0 for the initial position)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid move number: %s", args[0])
			}

			path, err := sessionPath("/boards/" + strconv.Itoa(position))
			if err != nil {
				return err
			}

			var result response.BoardResponse
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newSessionCloseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "close",
		Short: "Close the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := sessionPath("")
			if err != nil {
				return err
			}

			if err := client.Delete(path); err != nil {
				return err
			}
			if err := cfg.ClearSession(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Session closed")
			return nil
		},
	}
}
