package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/frankb2024/Bad-kids-sub000/internal/config"
	"github.com/frankb2024/Bad-kids-sub000/internal/engine"
	"github.com/frankb2024/Bad-kids-sub000/internal/logger"
	"github.com/frankb2024/Bad-kids-sub000/internal/notifier"
)

// Context carries the loaded configuration to every command.
type Context struct {
	Config config.Config
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	personStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// NewEngine builds and starts an engine for one-shot commands that inspect
// or mutate scheduler state without running the polling loop.
func (c *Context) NewEngine() (*engine.Engine, error) {
	eng, err := engine.New(c.Config, notifier.LogNotifier{})
	if err != nil {
		return nil, err
	}
	if err := eng.Start(); err != nil {
		return nil, fmt.Errorf("load scheduler state: %w", err)
	}
	return eng, nil
}

// Notifier returns the configured notification sink for the polling loop.
func (c *Context) Notifier() notifier.Notifier {
	if c.Config.Display.Enabled {
		// The shell being away is routine; delivery failures stay out of
		// the fire path
		return notifier.NewWebhook(c.Config.DisplayLockfilePath(), func(err error) {
			logger.Debug("display notification not delivered", "error", err)
		})
	}
	return notifier.LogNotifier{}
}
