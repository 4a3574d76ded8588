package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Tomas-vilte/issuegate/internal/cli/command/check"
	"github.com/Tomas-vilte/issuegate/internal/cli/command/config"
	"github.com/Tomas-vilte/issuegate/internal/cli/command/serve"
	"github.com/Tomas-vilte/issuegate/internal/cli/registry"
	cfg "github.com/Tomas-vilte/issuegate/internal/config"
	"github.com/Tomas-vilte/issuegate/internal/i18n"
	"github.com/Tomas-vilte/issuegate/internal/infrastructure/di"
	"github.com/Tomas-vilte/issuegate/internal/infrastructure/tickets/github"
	"github.com/Tomas-vilte/issuegate/internal/infrastructure/tickets/jira"
	"github.com/Tomas-vilte/issuegate/internal/logger"
	"github.com/Tomas-vilte/issuegate/internal/ui"
	"github.com/Tomas-vilte/issuegate/internal/version"
	"github.com/urfave/cli/v3"
)

// globalOptions are read before the command tree exists: the configuration
// language drives every usage string.
type globalOptions struct {
	configPath string
	debug      bool
	verbose    bool
	logFormat  string
}

func main() {
	opts := parseGlobalOptions(os.Args[1:])
	logger.Initialize(opts.debug, opts.verbose, opts.logFormat)

	app, translations, err := initializeApp(opts)
	if err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		ui.HandleAppError(os.Stderr, err, translations)
		os.Exit(1)
	}
}

func initializeApp(opts globalOptions) (*cli.Command, *i18n.Translations, error) {
	configPath := opts.configPath
	if configPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("could not determine the home directory: %w", err)
		}
		configPath = homeDir
	}

	cfgApp, err := cfg.LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	translations, err := i18n.NewTranslations(cfgApp.Language, "")
	if err != nil {
		return nil, nil, fmt.Errorf("error loading translations: %w", err)
	}

	container := di.NewContainer(cfgApp)
	if err := container.RegisterTrackerProvider(cfg.TrackerJira, jira.NewJiraProviderFactory()); err != nil {
		return nil, translations, err
	}
	if err := container.RegisterTrackerProvider(cfg.TrackerGitHub, github.NewGitHubProviderFactory()); err != nil {
		return nil, translations, err
	}

	registerCommand := registry.NewRegistry(cfgApp, translations)
	if err := registerCommand.Register("check", check.NewCheckCommandFactory(container)); err != nil {
		return nil, translations, err
	}
	if err := registerCommand.Register("serve", serve.NewServeCommandFactory(container)); err != nil {
		return nil, translations, err
	}
	if err := registerCommand.Register("config", config.NewConfigCommandFactory()); err != nil {
		return nil, translations, err
	}

	return &cli.Command{
		Name:        "issuegate",
		Usage:       translations.GetMessage("app_usage", 0, nil),
		Version:     version.FullVersion(),
		Description: translations.GetMessage("app_description", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: translations.GetMessage("flags.config", 0, nil)},
			&cli.BoolFlag{Name: "debug", Usage: translations.GetMessage("flags.debug", 0, nil)},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: translations.GetMessage("flags.verbose", 0, nil)},
			&cli.StringFlag{Name: "log-format", Value: logger.FormatPretty, Usage: translations.GetMessage("flags.log_format", 0, nil)},
		},
		Commands:              registerCommand.CreateCommands(),
		EnableShellCompletion: true,
	}, translations, nil
}

// parseGlobalOptions picks the global flags out of args, wherever they appear.
func parseGlobalOptions(args []string) globalOptions {
	opts := globalOptions{logFormat: logger.FormatPretty}

	for i := 0; i < len(args); i++ {
		name, value, hasValue := strings.Cut(strings.TrimLeft(args[i], "-"), "=")
		if !strings.HasPrefix(args[i], "-") {
			continue
		}
		next := func() string {
			if hasValue {
				return value
			}
			if i+1 < len(args) {
				i++
				return args[i]
			}
			return ""
		}

		switch name {
		case "config":
			opts.configPath = next()
		case "log-format":
			opts.logFormat = next()
		case "debug":
			opts.debug = !hasValue || value == "true"
		case "verbose", "v":
			opts.verbose = !hasValue || value == "true"
		}
	}
	return opts
}
