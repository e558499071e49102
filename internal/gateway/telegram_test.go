package gateway

import (
	"strings"
	"testing"

	"github.com/rohan/saarthi/internal/store"
)

type fakeScheduleStore struct {
	schedules []store.Schedule
	deleted   []int
	nextID    int
}

func (f *fakeScheduleStore) AddSchedule(chatID, instruction, persona string, intervalSeconds int) error {
	f.nextID++
	f.schedules = append(f.schedules, store.Schedule{
		ID:              f.nextID,
		ChatID:          chatID,
		Instruction:     instruction,
		Persona:         persona,
		IntervalSeconds: intervalSeconds,
	})
	return nil
}

func (f *fakeScheduleStore) ChatSchedules(chatID string) ([]store.Schedule, error) {
	var out []store.Schedule
	for _, sc := range f.schedules {
		if sc.ChatID == chatID {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (f *fakeScheduleStore) DeleteSchedule(chatID string, id int) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestHandleCommand_Schedule(t *testing.T) {
	fs := &fakeScheduleStore{}
	tg := &TelegramGateway{Schedules: fs}

	reply := tg.handleCommand("12345", "schedule", "3600 budget-shopper: check lipstick prices")
	if !strings.Contains(reply, "Scheduled every 3600s") {
		t.Errorf("Unexpected reply: %q", reply)
	}
	if len(fs.schedules) != 1 {
		t.Fatalf("Expected 1 schedule, got %d", len(fs.schedules))
	}
	sc := fs.schedules[0]
	if sc.ChatID != "12345" || sc.Persona != "budget-shopper" || sc.Instruction != "check lipstick prices" {
		t.Errorf("Unexpected schedule: %+v", sc)
	}
	if sc.IntervalSeconds != 3600 {
		t.Errorf("Interval = %d, want 3600", sc.IntervalSeconds)
	}
}

func TestHandleCommand_ScheduleRejectsShortInterval(t *testing.T) {
	fs := &fakeScheduleStore{}
	tg := &TelegramGateway{Schedules: fs}

	reply := tg.handleCommand("12345", "schedule", "10 check prices")
	if !strings.Contains(reply, "Minimum interval") {
		t.Errorf("Unexpected reply: %q", reply)
	}
	if len(fs.schedules) != 0 {
		t.Errorf("Schedule registered despite short interval: %+v", fs.schedules)
	}
}

func TestHandleCommand_ScheduleBadArguments(t *testing.T) {
	tg := &TelegramGateway{Schedules: &fakeScheduleStore{}}

	for _, args := range []string{"", "soon check prices", "3600"} {
		reply := tg.handleCommand("12345", "schedule", args)
		if !strings.Contains(reply, "Usage:") {
			t.Errorf("handleCommand(schedule, %q) = %q, want usage hint", args, reply)
		}
	}
}

func TestHandleCommand_ListAndUnschedule(t *testing.T) {
	fs := &fakeScheduleStore{}
	tg := &TelegramGateway{Schedules: fs}

	tg.handleCommand("12345", "schedule", "3600 check prices")
	tg.handleCommand("67890", "schedule", "7200 check stock")

	reply := tg.handleCommand("12345", "schedules", "")
	if !strings.Contains(reply, "check prices") || strings.Contains(reply, "check stock") {
		t.Errorf("Listing leaked across chats: %q", reply)
	}

	reply = tg.handleCommand("12345", "unschedule", "1")
	if !strings.Contains(reply, "Removed schedule #1") {
		t.Errorf("Unexpected reply: %q", reply)
	}
	if len(fs.deleted) != 1 || fs.deleted[0] != 1 {
		t.Errorf("Deleted = %v, want [1]", fs.deleted)
	}

	reply = tg.handleCommand("12345", "unschedule", "zero")
	if !strings.Contains(reply, "Usage:") {
		t.Errorf("Unexpected reply: %q", reply)
	}
}

func TestHandleCommand_NoStore(t *testing.T) {
	tg := &TelegramGateway{}
	reply := tg.handleCommand("12345", "schedule", "3600 check prices")
	if !strings.Contains(reply, "unavailable") {
		t.Errorf("Unexpected reply: %q", reply)
	}
}

func TestSplitInterval(t *testing.T) {
	if n, rest, ok := splitInterval("3600 check prices"); !ok || n != 3600 || rest != "check prices" {
		t.Errorf("splitInterval = (%d, %q, %v)", n, rest, ok)
	}
	if _, _, ok := splitInterval("soon check prices"); ok {
		t.Error("Expected failure for non-numeric interval")
	}
}

func TestSplitPersona(t *testing.T) {
	cases := []struct {
		text            string
		wantPersona     string
		wantInstruction string
	}{
		{"shopper: buy matte lipstick", "shopper", "buy matte lipstick"},
		{"budget-shopper: find earbuds", "budget-shopper", "find earbuds"},
		{"buy matte lipstick", "", "buy matte lipstick"},
		// A colon that does not name a persona belongs to the instruction.
		{"note: check https://example.com", "", "note: check https://example.com"},
		{"open https://example.com/a:b", "", "open https://example.com/a:b"},
	}

	for _, tc := range cases {
		persona, instruction := splitPersona(tc.text)
		if persona != tc.wantPersona || instruction != tc.wantInstruction {
			t.Errorf("splitPersona(%q) = (%q, %q), want (%q, %q)",
				tc.text, persona, instruction, tc.wantPersona, tc.wantInstruction)
		}
	}
}
