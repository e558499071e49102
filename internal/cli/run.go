package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rohan/saarthi/internal/agent"
	"github.com/rohan/saarthi/internal/executor"
	"github.com/rohan/saarthi/internal/observability"
)

var runPersona string

var runCmd = &cobra.Command{
	Use:   "run <instruction>",
	Short: "Interpret an instruction and execute it in the browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger := observability.NewLogger()

		planner, err := buildPlanner(cfg, logger)
		if err != nil {
			return err
		}
		policy, err := buildPolicy(cfg)
		if err != nil {
			return err
		}

		session := buildSession(cfg)
		defer session.Close()

		st := openStore(cfg)
		var history agent.RunHistory
		if st != nil {
			defer st.Close()
			history = st
		}

		runner := agent.NewRunner(planner, session, policy, history, logger, "cli")

		// Ctrl-C cancels between steps; the current step still finishes.
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		res, err := runner.Run(ctx, args[0], runPersona)
		if err != nil {
			return err
		}

		if jsonOutput {
			if err := json.NewEncoder(os.Stdout).Encode(res); err != nil {
				return err
			}
		} else {
			fmt.Println(res.Summary())
		}

		if res.Status != executor.StatusCompleted {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runPersona, "persona", "", "Persona tag shaping how the instruction is planned (default, shopper, budget-shopper, researcher, qa)")
	rootCmd.AddCommand(runCmd)
}
