package interactive

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/greenworld-labs/greenctl/internal/domain"
	"github.com/greenworld-labs/greenctl/internal/domain/config"
	"github.com/greenworld-labs/greenctl/internal/usecase"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
)

// SelectorAdapter handles interactive prompts
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// Confirm asks a yes/no question. --yes answers it up front; non-interactive
// runs without --yes refuse rather than broadcast unattended.
func (s *SelectorAdapter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if s.config.Yes {
		return true, nil
	}
	if s.config.NonInteractive {
		return false, fmt.Errorf("confirmation required in non-interactive mode, pass --yes: %w", domain.ErrAborted)
	}

	confirm := promptui.Prompt{
		Label:     prompt,
		IsConfirm: true,
	}

	_, err := confirm.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		if errors.Is(err, promptui.ErrInterrupt) {
			return false, domain.ErrAborted
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return true, nil
}

// SelectNetwork lets the user pick one of the configured networks
func (s *SelectorAdapter) SelectNetwork(ctx context.Context, names []string) (string, error) {
	if s.config.NonInteractive {
		return "", fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(names) == 0 {
		return "", fmt.Errorf("no networks configured: %w", domain.ErrNotFound)
	}

	if len(names) == 1 {
		return names[0], nil
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             "Select network",
		Items:             names,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(names),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}

	return names[index], nil
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		return len(fuzzy.Find(input, []string{item})) > 0
	}
}

var (
	_ usecase.Confirmer       = (*SelectorAdapter)(nil)
	_ usecase.NetworkSelector = (*SelectorAdapter)(nil)
)
