package agent

import (
	"context"
	"log"
	"time"

	"github.com/rohan/saarthi/internal/executor"
	"github.com/rohan/saarthi/internal/store"
)

type Messenger interface {
	Send(chatID string, text string) error
}

// InstructionRunner is what the scheduler drives; satisfied by *Runner.
type InstructionRunner interface {
	Run(ctx context.Context, instruction, personaTag string) (*executor.Result, error)
}

// Scheduler polls the store for due recurring instructions and runs them,
// reporting each outcome back through the gateway.
type Scheduler struct {
	Runner       InstructionRunner
	Store        *store.Store
	Gateway      Messenger
	PollInterval time.Duration
}

func NewScheduler(runner InstructionRunner, st *store.Store, gateway Messenger, pollInterval time.Duration) *Scheduler {
	if pollInterval == 0 {
		pollInterval = 30 * time.Second
	}
	return &Scheduler{
		Runner:       runner,
		Store:        st,
		Gateway:      gateway,
		PollInterval: pollInterval,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()

	log.Println("Instruction scheduler started...")

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pollAndExecute(ctx)
		}
	}
}

func (s *Scheduler) pollAndExecute(ctx context.Context) {
	due, err := s.Store.DueSchedules()
	if err != nil {
		log.Printf("Error polling schedules: %v", err)
		return
	}

	for _, sc := range due {
		log.Printf("Executing scheduled instruction %d for chat %s: %s", sc.ID, sc.ChatID, sc.Instruction)

		res, err := s.Runner.Run(ctx, sc.Instruction, sc.Persona)
		if err != nil {
			log.Printf("Error executing scheduled instruction %d: %v", sc.ID, err)
			if s.Gateway != nil {
				_ = s.Gateway.Send(sc.ChatID, "⏰ Scheduled run failed: "+err.Error())
			}
			continue
		}

		if err := s.Store.UpdateScheduleLastRun(sc.ID); err != nil {
			log.Printf("Error updating last run for schedule %d: %v", sc.ID, err)
		}

		// One-time schedules (interval = 0) are removed after running.
		if sc.IntervalSeconds == 0 {
			if err := s.Store.DeleteSchedule(sc.ChatID, sc.ID); err != nil {
				log.Printf("Error deleting one-time schedule %d: %v", sc.ID, err)
			}
		}

		if s.Gateway != nil {
			_ = s.Gateway.Send(sc.ChatID, "⏰ *Scheduled Run*\n\n"+res.Summary())
		}
	}
}
