package gateway

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/rohan/saarthi/internal/agent"
	"github.com/rohan/saarthi/internal/interpreter"
	"github.com/rohan/saarthi/internal/store"
)

// ScheduleStore is the slice of the store the gateway needs to register
// recurring instructions on behalf of a chat.
type ScheduleStore interface {
	AddSchedule(chatID, instruction, persona string, intervalSeconds int) error
	ChatSchedules(chatID string) ([]store.Schedule, error)
	DeleteSchedule(chatID string, id int) error
}

// TelegramGateway turns incoming chat messages into instruction runs.
// A message may carry a persona prefix, e.g. "shopper: buy matte lipstick";
// without one the default persona applies. The /schedule, /schedules, and
// /unschedule commands manage recurring runs for the chat.
type TelegramGateway struct {
	Bot       *tgbotapi.BotAPI
	Runner    agent.InstructionRunner
	Schedules ScheduleStore
}

var _ Messenger = (*TelegramGateway)(nil)

func NewTelegramGateway(token string, runner agent.InstructionRunner, schedules ScheduleStore) (*TelegramGateway, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	return &TelegramGateway{
		Bot:       bot,
		Runner:    runner,
		Schedules: schedules,
	}, nil
}

func (tg *TelegramGateway) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := tg.Bot.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		log.Printf("[%s] %s", update.Message.From.UserName, update.Message.Text)

		var reply string
		if update.Message.IsCommand() {
			chatID := fmt.Sprintf("%d", update.Message.Chat.ID)
			reply = tg.handleCommand(chatID, update.Message.Command(), update.Message.CommandArguments())
		} else {
			persona, instruction := splitPersona(update.Message.Text)

			res, err := tg.Runner.Run(context.Background(), instruction, persona)
			if err != nil {
				reply = "I couldn't plan that: " + err.Error()
			} else {
				reply = res.Summary()
			}
		}

		msg := tgbotapi.NewMessage(update.Message.Chat.ID, reply)
		tg.Bot.Send(msg)
	}
	return nil
}

func (tg *TelegramGateway) Send(chatID string, text string) error {
	id := 0
	fmt.Sscanf(chatID, "%d", &id)
	if id == 0 {
		return fmt.Errorf("invalid chat ID: %s", chatID)
	}

	msg := tgbotapi.NewMessage(int64(id), text)
	msg.ParseMode = "Markdown" // Enable markdown for better alerts
	_, err := tg.Bot.Send(msg)
	return err
}

func (tg *TelegramGateway) Stop() error {
	tg.Bot.StopReceivingUpdates()
	return nil
}

// handleCommand dispatches slash commands that manage recurring runs.
// The chat owns its schedules: listing and removal only see entries
// registered from the same chat.
func (tg *TelegramGateway) handleCommand(chatID, command, args string) string {
	if tg.Schedules == nil {
		return "Scheduling is unavailable: run history storage could not be opened."
	}

	switch command {
	case "schedule":
		interval, rest, ok := splitInterval(args)
		if !ok {
			return "Usage: /schedule <interval_seconds> <instruction>"
		}
		if interval < 60 {
			return "Minimum interval is 60 seconds."
		}
		persona, instruction := splitPersona(rest)
		if instruction == "" {
			return "Usage: /schedule <interval_seconds> <instruction>"
		}
		if err := tg.Schedules.AddSchedule(chatID, instruction, persona, interval); err != nil {
			return "Failed to register the schedule: " + err.Error()
		}
		return fmt.Sprintf("Scheduled every %ds: %s", interval, instruction)

	case "schedules":
		schedules, err := tg.Schedules.ChatSchedules(chatID)
		if err != nil {
			return "Failed to list schedules: " + err.Error()
		}
		if len(schedules) == 0 {
			return "No schedules registered for this chat."
		}
		var sb strings.Builder
		for _, sc := range schedules {
			fmt.Fprintf(&sb, "#%d every %ds: %s\n", sc.ID, sc.IntervalSeconds, sc.Instruction)
		}
		return strings.TrimRight(sb.String(), "\n")

	case "unschedule":
		id, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil || id <= 0 {
			return "Usage: /unschedule <id>"
		}
		if err := tg.Schedules.DeleteSchedule(chatID, id); err != nil {
			return "Failed to remove the schedule: " + err.Error()
		}
		return fmt.Sprintf("Removed schedule #%d.", id)

	default:
		return "Unknown command. Available: /schedule, /schedules, /unschedule"
	}
}

// splitInterval peels the leading integer off the command arguments.
func splitInterval(args string) (interval int, rest string, ok bool) {
	head, tail, _ := strings.Cut(strings.TrimSpace(args), " ")
	interval, err := strconv.Atoi(head)
	if err != nil {
		return 0, "", false
	}
	return interval, strings.TrimSpace(tail), true
}

// splitPersona peels a leading "persona:" prefix off a message when the
// prefix names a known persona; anything else is part of the instruction.
func splitPersona(text string) (persona, instruction string) {
	before, after, found := strings.Cut(text, ":")
	if found {
		if _, err := interpreter.ParsePersona(before); err == nil {
			return strings.TrimSpace(before), strings.TrimSpace(after)
		}
	}
	return "", strings.TrimSpace(text)
}
