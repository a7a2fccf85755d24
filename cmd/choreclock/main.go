package main

import (
	"github.com/alecthomas/kong"

	"github.com/frankb2024/Bad-kids-sub000/internal/cli"
	"github.com/frankb2024/Bad-kids-sub000/internal/config"
	"github.com/frankb2024/Bad-kids-sub000/internal/constants"
	"github.com/frankb2024/Bad-kids-sub000/internal/errors"
	"github.com/frankb2024/Bad-kids-sub000/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Run       cli.RunCmd       `cmd:"" help:"Run the scheduler loop." default:"1"`
	Init      cli.InitCmd      `cmd:"" help:"Write a sample schedule and content files."`
	Rotations cli.RotationsCmd `cmd:"" help:"Inspect and control chore rotations."`
	Inject    cli.InjectCmd    `cmd:"" help:"Queue a one-off task and wait for it to fire."`
	Status    cli.StatusCmd    `cmd:"" help:"Show today's next and last tasks."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Household chore rotation scheduler"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	if CLI.Debug {
		cfg.Debug = true
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, DataDir: cfg.DataDir}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}

	errors.Fatal(ctx.Run(&cli.Context{Config: cfg}))
}
