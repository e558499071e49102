package cli

import (
	"fmt"
	"log"

	"github.com/tmc/langchaingo/llms/openai"

	"github.com/rohan/saarthi/internal/browser"
	"github.com/rohan/saarthi/internal/governance"
	"github.com/rohan/saarthi/internal/interpreter"
	"github.com/rohan/saarthi/internal/observability"
	"github.com/rohan/saarthi/internal/store"
	"github.com/rohan/saarthi/pkg/config"
)

// Destructive flows the agent must never walk into on its own. More
// patterns can be layered on via the policy section of the config.
var defaultDeniedTargets = []string{
	`(?i)\b(checkout|place order|pay now|buy now|confirm purchase|complete purchase)\b`,
	`(?i)\b(delete account|close account|unsubscribe all)\b`,
}

func buildPlanner(cfg *config.Config, logger *observability.Logger) (interpreter.Planner, error) {
	if !cfg.Provider.Enabled || cfg.Provider.APIKey == "" {
		log.Println("No language model provider configured, using the rule-based planner")
		return &interpreter.RulePlanner{}, nil
	}

	switch cfg.Provider.Name {
	case "openai", "openrouter":
		opts := []openai.Option{
			openai.WithToken(cfg.Provider.APIKey),
			openai.WithModel(cfg.Provider.Model),
		}
		if cfg.Provider.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.Provider.BaseURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, err
		}
		return interpreter.New(model, logger), nil
	default:
		return nil, fmt.Errorf("provider %s is not supported", cfg.Provider.Name)
	}
}

func buildPolicy(cfg *config.Config) (*governance.DefaultPolicyEngine, error) {
	pol := governance.NewDefaultPolicyEngine()
	for _, pattern := range defaultDeniedTargets {
		if err := pol.DenyTarget(pattern); err != nil {
			return nil, err
		}
	}
	for _, pattern := range cfg.Policy.DeniedTargets {
		if err := pol.DenyTarget(pattern); err != nil {
			return nil, fmt.Errorf("bad denied_targets pattern %q: %v", pattern, err)
		}
	}
	for _, pattern := range cfg.Policy.DeniedURLs {
		if err := pol.DenyURL(pattern); err != nil {
			return nil, fmt.Errorf("bad denied_urls pattern %q: %v", pattern, err)
		}
	}
	return pol, nil
}

func buildSession(cfg *config.Config) *browser.Session {
	return browser.NewSession(browser.Config{
		Headless:      cfg.Browser.Headless,
		ActionTimeout: cfg.ActionTimeout(),
		NavTimeout:    cfg.NavTimeout(),
		UserAgent:     cfg.Browser.UserAgent,
	})
}

// openStore opens the run history database. History is an optional
// convenience; failure to open it downgrades to a warning.
func openStore(cfg *config.Config) *store.Store {
	st, err := store.Open(cfg.Memory.Path)
	if err != nil {
		log.Printf("Warning: run history unavailable: %v", err)
		return nil
	}
	return st
}
