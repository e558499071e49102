package cli

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rohan/saarthi/internal/agent"
	"github.com/rohan/saarthi/internal/gateway"
	"github.com/rohan/saarthi/internal/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a long-lived agent behind the Telegram gateway",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		tgCfg, ok := cfg.GetTelegramConfig()
		if !ok {
			return fmt.Errorf("telegram gateway is not enabled or token is missing")
		}

		observability.PrintBanner()
		observability.InitializeTerminal()

		// Route all log output through the terminal mutex so it never
		// interrupts the dashboard's cursor save/restore sequence.
		log.SetOutput(observability.NewTermWriter())

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

		runner := agent.NewRunner(planner, session, policy, history, logger, "telegram")

		var schedules gateway.ScheduleStore
		if st != nil {
			schedules = st
		}
		tg, err := gateway.NewTelegramGateway(tgCfg.Token, runner, schedules)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.Scheduler.Enabled && st != nil {
			scheduler := agent.NewScheduler(runner, st, tg,
				time.Duration(cfg.Scheduler.PollIntervalSeconds)*time.Second)
			go scheduler.Start(ctx)
		}

		// Live Resource Dashboard (1-second updates)
		go func() {
			ticker := time.NewTicker(1 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					observability.PrintLiveStatus()
				}
			}
		}()

		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					observability.Heartbeat()
					logger.LogHeartbeat()
				}
			}
		}()

		go func() {
			if err := tg.Start(); err != nil {
				log.Printf("\033[91m[ FAIL ] GATEWAY CRITICAL ERROR: %v\033[0m", err)
				stop() // stop caller if gateway dies
			}
		}()

		<-ctx.Done()

		_ = tg.Stop()
		observability.CleanupTerminal()

		// Give a short time for final logs/syncs
		time.Sleep(500 * time.Millisecond)
		log.Println("\033[95m[ EXIT ] AGENT DE-INITIALIZED. GOODBYE.\033[0m")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
