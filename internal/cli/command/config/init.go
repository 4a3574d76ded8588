package config

import (
	"context"

	"github.com/Tomas-vilte/issuegate/internal/config"
	domainErrors "github.com/Tomas-vilte/issuegate/internal/domain/errors"
	"github.com/Tomas-vilte/issuegate/internal/domain/models"
	appErrors "github.com/Tomas-vilte/issuegate/internal/errors"
	"github.com/Tomas-vilte/issuegate/internal/i18n"
	"github.com/Tomas-vilte/issuegate/internal/regex"
	"github.com/Tomas-vilte/issuegate/internal/ui"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newInitCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: t.GetMessage("config.init_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "association", Usage: t.GetMessage("config.flag_association", 0, nil)},
			&cli.StringFlag{Name: "tracker", Usage: t.GetMessage("config.flag_tracker", 0, nil)},
			&cli.StringFlag{Name: "issue-pattern", Usage: t.GetMessage("config.flag_issue_pattern", 0, nil)},
			&cli.StringFlag{Name: "dummy-pattern", Usage: t.GetMessage("config.flag_dummy_pattern", 0, nil)},
			&cli.StringFlag{Name: "base-url", Usage: t.GetMessage("config.flag_base_url", 0, nil)},
			&cli.StringFlag{Name: "email", Usage: t.GetMessage("config.flag_email", 0, nil)},
			&cli.StringFlag{Name: "api-key", Usage: t.GetMessage("config.flag_api_key", 0, nil)},
			&cli.StringFlag{Name: "owner", Usage: t.GetMessage("config.flag_owner", 0, nil)},
			&cli.StringFlag{Name: "repo-name", Usage: t.GetMessage("config.flag_repo_name", 0, nil)},
			&cli.StringFlag{Name: "token", Usage: t.GetMessage("config.flag_token", 0, nil)},
		},
		Action: initConfigAction(cfg, t),
	}
}

func initConfigAction(cfg *config.Config, t *i18n.Translations) cli.ActionFunc {
	return func(_ context.Context, command *cli.Command) error {
		if err := applyInitFlags(command, cfg); err != nil {
			return err
		}

		if err := config.SaveConfig(cfg); err != nil {
			return appErrors.ErrConfigInvalid.WithError(err).WithContext("path", cfg.PathFile)
		}

		ui.PrintSuccess(command.Root().Writer, t.GetMessage("config.saved", 0, map[string]interface{}{"Path": cfg.PathFile}))
		return nil
	}
}

// applyInitFlags copies the given flags onto cfg. Tracker patterns default to
// the usual reference format of the selected tracker.
func applyInitFlags(command *cli.Command, cfg *config.Config) error {
	if v := command.String("association"); v != "" {
		policy, err := models.ParseAssociationPolicy(v)
		if err != nil {
			return appErrors.ErrConfigInvalid.WithError(domainErrors.NewConfigError("association", err.Error(), nil))
		}
		cfg.Association = policy.String()
	}

	if v := command.String("issue-pattern"); v != "" {
		cfg.IssuePattern = v
	}
	if v := command.String("dummy-pattern"); v != "" {
		cfg.DummyIssuePattern = v
	}

	tracker := command.String("tracker")
	if tracker == "" {
		return nil
	}
	cfg.ActiveTracker = tracker

	if cfg.TrackerProviders == nil {
		cfg.TrackerProviders = make(map[string]config.TrackerProviderConfig)
	}
	provider := cfg.TrackerProviders[tracker]
	setIfNotEmpty(&provider.BaseURL, command.String("base-url"))

	switch tracker {
	case config.TrackerJira:
		setIfNotEmpty(&provider.Email, command.String("email"))
		setIfNotEmpty(&provider.APIKey, command.String("api-key"))
		if cfg.IssuePattern == "" {
			cfg.IssuePattern = regex.JiraTicket.String()
		}
	case config.TrackerGitHub:
		setIfNotEmpty(&provider.Owner, command.String("owner"))
		setIfNotEmpty(&provider.Repo, command.String("repo-name"))
		setIfNotEmpty(&provider.Token, command.String("token"))
		if cfg.IssuePattern == "" {
			cfg.IssuePattern = regex.GitHubIssue.String()
		}
	default:
		return appErrors.ErrTrackerNotSupported.WithError(domainErrors.NewTrackerProviderNotFoundError(tracker))
	}
	cfg.TrackerProviders[tracker] = provider

	if cfg.DummyIssuePattern == "" {
		cfg.DummyIssuePattern = regex.NoIssue.String()
	}
	return nil
}

func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
