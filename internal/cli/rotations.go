package cli

import (
	"fmt"
	"strings"
)

// RotationsCmd groups the rotation inspection and control commands.
type RotationsCmd struct {
	List    RotationsListCmd    `cmd:"" help:"Show each rotation's anchor, participants, and today's assignee." default:"1"`
	Advance RotationsAdvanceCmd `cmd:"" help:"Skip every rotation forward by one slot."`
	Dump    RotationsDumpCmd    `cmd:"" help:"Print resolved assignments for the coming days."`
}

type RotationsListCmd struct{}

func (c *RotationsListCmd) Run(ctx *Context) error {
	eng, err := ctx.NewEngine()
	if err != nil {
		return err
	}

	defs := eng.Rotations()
	if len(defs) == 0 {
		fmt.Println("No rotating tasks in the schedule.")
		return nil
	}

	fmt.Println(headerStyle.Render("TIME   DAYS             ACTION           ANCHOR      TODAY"))
	for _, def := range defs {
		today := eng.ResolveToday(def)
		fmt.Printf("%-6s %-16s %-16s %-11s %s\n",
			def.Key.Time, def.Key.Days, def.Key.Action, def.Anchor,
			personStyle.Render(today))
		fmt.Println(dimStyle.Render("       rotation: " + strings.Join(def.Participants, " > ")))
	}
	return nil
}

type RotationsAdvanceCmd struct{}

func (c *RotationsAdvanceCmd) Run(ctx *Context) error {
	eng, err := ctx.NewEngine()
	if err != nil {
		return err
	}
	if err := eng.AdvanceRotations(); err != nil {
		return err
	}

	fmt.Println("Advanced all rotations by one slot.")
	for _, def := range eng.Rotations() {
		fmt.Printf("  %-16s now %s (anchor %s)\n",
			def.Key.Action, personStyle.Render(eng.ResolveToday(def)), def.Anchor)
	}
	return nil
}

type RotationsDumpCmd struct {
	Days int `short:"n" default:"7" help:"Number of days to resolve."`
}

func (c *RotationsDumpCmd) Run(ctx *Context) error {
	if c.Days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}
	eng, err := ctx.NewEngine()
	if err != nil {
		return err
	}

	rows := eng.Dump(c.Days)
	if len(rows) == 0 {
		fmt.Println("Nothing scheduled in that range.")
		return nil
	}

	fmt.Println(headerStyle.Render("DATE        DAY        TIME   PERSON   ACTION"))
	lastDate := ""
	for _, row := range rows {
		date, day := row.Date, row.Day
		if date == lastDate {
			date, day = "", ""
		} else {
			lastDate = date
		}
		fmt.Printf("%-11s %-10s %-6s %-8s %s\n",
			date, day, row.Time, personStyle.Render(row.Person), row.Action)
	}
	return nil
}
