package cli

import (
	"github.com/frankb2024/Bad-kids-sub000/internal/engine"
)

// RunCmd starts the scheduler loop and blocks until SIGINT/SIGTERM.
type RunCmd struct{}

func (c *RunCmd) Run(ctx *Context) error {
	eng, err := engine.New(ctx.Config, ctx.Notifier())
	if err != nil {
		return err
	}
	return engine.NewLoop(ctx.Config, eng).Run()
}
