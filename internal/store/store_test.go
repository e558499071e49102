package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rohan/saarthi/internal/executor"
	"github.com/rohan/saarthi/internal/plan"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSaveRunAndReadBack(t *testing.T) {
	st := openTestStore(t)

	res := &executor.Result{
		Instruction: "add a matte lipstick to my cart",
		Persona:     "shopper",
		Status:      executor.StatusPartial,
		TotalSteps:  4,
		StartedAt:   time.Now().Add(-10 * time.Second),
		FinishedAt:  time.Now(),
		Steps: []executor.StepResult{
			{Order: 0, Kind: plan.KindNavigate, Outcome: executor.OutcomeSuccess},
			{Order: 1, Kind: plan.KindType, Target: "search box", Outcome: executor.OutcomeSuccess},
			{Order: 2, Kind: plan.KindClick, Target: "search button", Outcome: executor.OutcomeElementNotFound, Detail: "no element on page matches"},
		},
	}

	runID, err := st.SaveRun(res)
	if err != nil {
		t.Fatalf("SaveRun failed: %v", err)
	}

	runs, err := st.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("Expected 1 run, got %d", len(runs))
	}
	if runs[0].ID != runID || runs[0].Status != string(executor.StatusPartial) {
		t.Errorf("Unexpected run record: %+v", runs[0])
	}

	steps, err := st.RunSteps(runID)
	if err != nil {
		t.Fatalf("RunSteps failed: %v", err)
	}
	if len(steps) != 3 {
		t.Fatalf("Expected 3 steps, got %d", len(steps))
	}
	if steps[2].Outcome != string(executor.OutcomeElementNotFound) {
		t.Errorf("Step 2 outcome = %q", steps[2].Outcome)
	}
}

func TestRecentRuns_Limit(t *testing.T) {
	st := openTestStore(t)

	for i := 0; i < 5; i++ {
		res := &executor.Result{
			Instruction: "run",
			Status:      executor.StatusCompleted,
			TotalSteps:  1,
			StartedAt:   time.Now().Add(time.Duration(i) * time.Second),
			FinishedAt:  time.Now(),
		}
		if _, err := st.SaveRun(res); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}
	}

	runs, err := st.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs, got %d", len(runs))
	}
}

func TestSchedules(t *testing.T) {
	st := openTestStore(t)

	// last_run is back-dated on insert, so a schedule is due immediately.
	if err := st.AddSchedule("12345", "check prices", "budget-shopper", 3600); err != nil {
		t.Fatalf("AddSchedule failed: %v", err)
	}

	due, err := st.DueSchedules()
	if err != nil {
		t.Fatalf("DueSchedules failed: %v", err)
	}
	if len(due) != 1 {
		t.Fatalf("Expected 1 due schedule, got %d", len(due))
	}
	sc := due[0]
	if sc.ChatID != "12345" || sc.Persona != "budget-shopper" || sc.IntervalSeconds != 3600 {
		t.Errorf("Unexpected schedule: %+v", sc)
	}

	if err := st.AddSchedule("99999", "other chat task", "", 600); err != nil {
		t.Fatalf("AddSchedule failed: %v", err)
	}
	mine, err := st.ChatSchedules("12345")
	if err != nil {
		t.Fatalf("ChatSchedules failed: %v", err)
	}
	if len(mine) != 1 || mine[0].Instruction != "check prices" {
		t.Errorf("ChatSchedules leaked across chats: %+v", mine)
	}

	if err := st.UpdateScheduleLastRun(sc.ID); err != nil {
		t.Fatalf("UpdateScheduleLastRun failed: %v", err)
	}
	due, err = st.DueSchedules()
	if err != nil {
		t.Fatalf("DueSchedules failed: %v", err)
	}
	if len(due) != 0 {
		t.Errorf("Schedule still due right after running: %+v", due)
	}

	if err := st.DeleteSchedule("12345", sc.ID); err != nil {
		t.Fatalf("DeleteSchedule failed: %v", err)
	}
}
