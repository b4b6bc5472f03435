package cmd

import (
	"encoding/json"
	"time"

	"github.com/dreamtask/dreamtask/internal/app"
	"github.com/spf13/cobra"
)

func DecomposeCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "decompose <goal> <timeframe>",
		Short: "Decompose a goal and print the plan as JSON",
		Long: "Runs the configured decomposer (AGENT_MODE) once. Failures print the " +
			"fallback plan, exactly as the API would return it.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			if timeout > 0 {
				cfg.AgentTimeout = timeout
			}

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			plan, err := a.DecompositionService.Decompose(cmd.Context(), args[0], args[1], nil)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(plan)
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "override AGENT_TIMEOUT")
	return cmd
}
