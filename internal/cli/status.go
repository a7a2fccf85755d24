package cli

import (
	"fmt"

	"github.com/frankb2024/Bad-kids-sub000/internal/models"
	"github.com/frankb2024/Bad-kids-sub000/internal/utils"
)

// StatusCmd prints the next and last task for today plus recent history.
type StatusCmd struct {
	History int `short:"n" default:"5" help:"Number of recent fired tasks to show."`
}

func (c *StatusCmd) Run(ctx *Context) error {
	eng, err := ctx.NewEngine()
	if err != nil {
		return err
	}

	now, err := utils.NowInTimezone(ctx.Config.Timezone)
	if err != nil {
		return err
	}
	fmt.Println(headerStyle.Render("Today, " + now.Format("Monday 15:04")))
	printSummary("next", eng.Next())
	printSummary("last", eng.Last())

	if c.History <= 0 {
		return nil
	}
	records, err := eng.TaskLog().Tail(c.History)
	if err != nil {
		return fmt.Errorf("read task history: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Recent"))
	for _, rec := range records {
		fmt.Printf("  %s %s  %s %s\n",
			dimStyle.Render(rec.Date), rec.Time,
			personStyle.Render(rec.Person), rec.Action)
	}
	return nil
}

func printSummary(name string, s *models.TaskSummary) {
	if s == nil {
		fmt.Printf("  %-5s %s\n", name, dimStyle.Render("none"))
		return
	}
	label := s.Label
	if label == "" {
		label = s.Action
	}
	fmt.Printf("  %-5s %s  %s (%s)\n",
		name, s.At.Format("15:04"), personStyle.Render(s.Person), label)
}
