package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rohan/saarthi/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent instruction runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		st, err := store.Open(cfg.Memory.Path)
		if err != nil {
			return fmt.Errorf("failed to open run history: %v", err)
		}
		defer st.Close()

		runs, err := st.RecentRuns(historyLimit)
		if err != nil {
			return err
		}

		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(runs)
		}

		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		for _, r := range runs {
			persona := r.Persona
			if persona == "" {
				persona = "default"
			}
			fmt.Printf("#%d  [%s]  %-20s  (%s)  %q\n",
				r.ID, r.StartedAt.Format("2006-01-02 15:04"), r.Status, persona, r.Instruction)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}
