package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/rohan/saarthi/internal/executor"
)

// Config controls the managed Chrome instance and the bound on each action.
type Config struct {
	Headless      bool
	ActionTimeout time.Duration
	NavTimeout    time.Duration
	UserAgent     string
}

// Session is a chromedp-backed browser session implementing
// executor.Session. The browser launches lazily on first use and stays
// open across steps so each step observes the page state the previous
// one produced.
type Session struct {
	mu            sync.Mutex
	cfg           Config
	allocCtx      context.Context
	browserCtx    context.Context
	allocCancel   context.CancelFunc
	browserCancel context.CancelFunc
}

func NewSession(cfg Config) *Session {
	if cfg.ActionTimeout == 0 {
		cfg.ActionTimeout = 30 * time.Second
	}
	if cfg.NavTimeout == 0 {
		cfg.NavTimeout = 60 * time.Second
	}
	return &Session{cfg: cfg}
}

func (s *Session) init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browserCtx != nil {
		select {
		case <-s.browserCtx.Done():
			s.cleanup()
		default:
			return nil
		}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("headless", s.cfg.Headless),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
	)
	if s.cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(s.cfg.UserAgent))
	}

	s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	s.browserCtx, s.browserCancel = chromedp.NewContext(s.allocCtx)

	return chromedp.Run(s.browserCtx)
}

func (s *Session) cleanup() {
	if s.browserCancel != nil {
		s.browserCancel()
	}
	if s.allocCancel != nil {
		s.allocCancel()
	}
	s.browserCtx = nil
	s.allocCtx = nil
}

// Close shuts the browser down. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanup()
}

// run executes chromedp actions against the live browser with a timeout.
// Deadline overruns surface as executor.ErrTimeout so the executor can
// classify the step. Steps are never cancelled mid-action; the caller's
// context is honored between steps by the executor.
func (s *Session) run(timeout time.Duration, actions ...chromedp.Action) error {
	if err := s.init(); err != nil {
		return fmt.Errorf("failed to initialize browser: %v", err)
	}

	actionCtx, cancel := context.WithTimeout(s.browserCtx, timeout)
	defer cancel()

	if err := chromedp.Run(actionCtx, actions...); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("browser action exceeded %v: %w", timeout, executor.ErrTimeout)
		}
		return err
	}
	return nil
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	return s.run(s.cfg.NavTimeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (s *Session) Click(ctx context.Context, target string) error {
	sel, err := s.resolve(target)
	if err != nil {
		return err
	}
	return s.run(s.cfg.ActionTimeout,
		chromedp.ScrollIntoView(sel, chromedp.ByQuery),
		chromedp.Click(sel, chromedp.ByQuery),
	)
}

func (s *Session) Type(ctx context.Context, target, text string) error {
	sel, err := s.resolve(target)
	if err != nil {
		return err
	}
	// Clear the field first, then type. Typing does not submit; the plan
	// carries an explicit click step for that.
	return s.run(s.cfg.ActionTimeout,
		chromedp.Click(sel, chromedp.ByQuery),
		chromedp.SetValue(sel, "", chromedp.ByQuery),
		chromedp.SendKeys(sel, text, chromedp.ByQuery),
	)
}

// WaitFor polls for the target until it resolves or the action timeout
// elapses. This is the plan-level implicit wait for late-rendering pages.
func (s *Session) WaitFor(ctx context.Context, target string) error {
	deadline := time.Now().Add(s.cfg.ActionTimeout)
	for {
		sel, err := s.resolve(target)
		if err == nil {
			return s.run(s.cfg.ActionTimeout, chromedp.WaitVisible(sel, chromedp.ByQuery))
		}
		if !errors.Is(err, executor.ErrElementNotFound) {
			return err
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("element %q did not appear within %v: %w", target, s.cfg.ActionTimeout, executor.ErrTimeout)
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func (s *Session) Scroll(ctx context.Context, target string) error {
	if target == "" {
		return s.run(s.cfg.ActionTimeout,
			chromedp.Evaluate("window.scrollTo(0, document.body.scrollHeight)", nil),
		)
	}
	sel, err := s.resolve(target)
	if err != nil {
		return err
	}
	return s.run(s.cfg.ActionTimeout, chromedp.ScrollIntoView(sel, chromedp.ByQuery))
}
