package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/gomemo/internal/api/request"
	"github.com/mcoot/gomemo/internal/api/response"
	"github.com/mcoot/gomemo/internal/session"
)

func newStudyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Step through the record before replaying it",
	}

	cmd.AddCommand(newStudyStepCmd("next", "Show the next move", "/study/next"))
	cmd.AddCommand(newStudyStepCmd("prev", "Step back one move", "/study/prev"))

	return cmd
}

func newStudyStepCmd(use, short, suffix string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := sessionPath(suffix)
			if err != nil {
				return err
			}

			var result response.StudyResponse
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay the record from memory",
	}

	cmd.AddCommand(newReplayStartCmd())

	return cmd
}

func newReplayStartCmd() *cobra.Command {
	var (
		start int
		end   int
		side  string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start replaying the record from memory",
		Long: `Start a replay of moves --start to --end (1-based, inclusive).

With --side the server plays the other color automatically. Without it
you play both colors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if start < 1 {
				return fmt.Errorf("--start must be at least 1")
			}

			path, err := sessionPath("/replay")
			if err != nil {
				return err
			}

			req := request.StartReplayRequest{StartMove: start - 1, Side: side}
			if end > 0 {
				endMove := end - 1
				req.EndMove = &endMove
			}

			var result response.Session
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&start, "start", 1, "First move to replay")
	cmd.Flags().IntVar(&end, "end", 0, "Last move to replay (default: the end of the game)")
	cmd.Flags().StringVar(&side, "side", "", "Color to play: B or W (default: both)")

	return cmd
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <x> <y> | play <sgf-point>",
		Short: "Play the next move of the replay",
		Long: `Play the next move of the replay. The point is given either as
0-based x and y coordinates from the top left, or as SGF letters
(for example "dd").`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, y, err := parsePoint(args)
			if err != nil {
				return err
			}

			path, err := sessionPath("/moves")
			if err != nil {
				return err
			}

			var result response.MoveResponse
			if err := client.Post(path, request.MoveRequest{X: &x, Y: &y}, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

// parsePoint accepts either "x y" or a two-letter SGF point
func parsePoint(args []string) (int, int, error) {
	if len(args) == 2 {
		x, errX := strconv.Atoi(args[0])
		y, errY := strconv.Atoi(args[1])
		if errX != nil || errY != nil {
			return 0, 0, fmt.Errorf("invalid point: %s %s", args[0], args[1])
		}
		return x, y, nil
	}

	p := args[0]
	if len(p) != 2 || p[0] < 'a' || p[0] > 'z' || p[1] < 'a' || p[1] > 'z' {
		return 0, 0, fmt.Errorf("invalid point: %q", p)
	}
	return int(p[0] - 'a'), int(p[1] - 'a'), nil
}

func newPassCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pass",
		Short: "Claim that the next move is a pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := sessionPath("/pass")
			if err != nil {
				return err
			}

			var result response.MoveResponse
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Abandon the replay and return to studying from the start",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := sessionPath("/reset")
			if err != nil {
				return err
			}

			var result response.Session
			if err := client.Post(path, nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newHintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hint",
		Short: "Show the hint for the current move",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := sessionPath("/hint")
			if err != nil {
				return err
			}

			var result response.HintResponse
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newDifficultCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "difficult",
		Short: "List the moves with the most wrong attempts",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if limit > 0 {
				query = "?limit=" + strconv.Itoa(limit)
			}
			path, err := sessionPath("/difficult" + query)
			if err != nil {
				return err
			}

			var result response.DifficultMovesResponse
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 5, "Maximum number of moves to show (0 for all)")

	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show accuracy and timing for the current replay",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := sessionPath("/stats")
			if err != nil {
				return err
			}

			var result session.CompletionStats
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
