package cli

import (
	"fmt"
	"os"

	"github.com/frankb2024/Bad-kids-sub000/internal/content"
	"github.com/frankb2024/Bad-kids-sub000/internal/schedule"
)

// InitCmd prepares the data directory: a sample schedule (unless one exists)
// and starter content pools.
type InitCmd struct {
	Force bool `short:"f" help:"Overwrite an existing schedule with the sample."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := os.MkdirAll(ctx.Config.DataDir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	store := schedule.NewStore(ctx.Config.SchedulePath())
	if store.Exists() && !c.Force {
		fmt.Printf("Schedule already exists at %s (use --force to overwrite)\n", store.Path())
	} else {
		if err := store.WriteSample(); err != nil {
			return err
		}
		fmt.Printf("Wrote sample schedule to %s\n", store.Path())
	}

	library := content.NewLibrary(ctx.Config.DataDir)
	if err := library.WriteSamples(); err != nil {
		return err
	}
	fmt.Printf("Data directory ready: %s\n", ctx.Config.DataDir)
	return nil
}
