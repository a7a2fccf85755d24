package cli

import (
	"fmt"
	"time"

	"github.com/frankb2024/Bad-kids-sub000/internal/content"
	"github.com/frankb2024/Bad-kids-sub000/internal/engine"
)

// InjectCmd queues a one-off task and waits for it to fire, for testing
// the notification path without editing the schedule.
type InjectCmd struct {
	Person string `arg:"" help:"Person to call, or a content category (story, quote, joke)."`
	Action string `arg:"" optional:"" default:"check in" help:"Action to announce."`
	In     int    `help:"Seconds until the task fires." default:"5"`
}

func (c *InjectCmd) Run(ctx *Context) error {
	if c.In < 0 {
		return fmt.Errorf("--in must not be negative")
	}

	eng, err := engine.New(ctx.Config, ctx.Notifier())
	if err != nil {
		return err
	}
	if err := eng.Start(); err != nil {
		return fmt.Errorf("load scheduler state: %w", err)
	}

	delay := time.Duration(c.In) * time.Second
	inst := eng.Inject(c.Person, c.Action, delay)
	if cat, ok := content.CategoryForAction(c.Person); ok {
		fmt.Printf("Queued a %s draw at %s.\n", cat, inst.At.Format("15:04:05"))
	} else {
		fmt.Printf("Queued %q for %s at %s.\n",
			c.Action, personStyle.Render(c.Person), inst.At.Format("15:04:05"))
	}

	deadline := time.Now().Add(delay + ctx.Config.TriggerWindow() + 5*time.Second)
	for time.Now().Before(deadline) {
		eng.Tick()
		if inst.Done {
			fmt.Println("Fired.")
			return nil
		}
		time.Sleep(ctx.Config.TickInterval())
	}
	return fmt.Errorf("task did not fire before the deadline")
}
