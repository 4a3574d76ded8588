package check

import (
	"context"
	"errors"

	"github.com/Tomas-vilte/issuegate/internal/config"
	domainErrors "github.com/Tomas-vilte/issuegate/internal/domain/errors"
	"github.com/Tomas-vilte/issuegate/internal/domain/models"
	"github.com/Tomas-vilte/issuegate/internal/domain/ports"
	appErrors "github.com/Tomas-vilte/issuegate/internal/errors"
	"github.com/Tomas-vilte/issuegate/internal/i18n"
	"github.com/Tomas-vilte/issuegate/internal/logger"
	"github.com/Tomas-vilte/issuegate/internal/ui"
	"github.com/urfave/cli/v3"
)

// Dependencies is the part of the DI container the command needs.
type Dependencies interface {
	GetGitService(path string) (ports.GitService, error)
	GetValidator() (ports.CommitValidator, error)
}

type CheckCommandFactory struct {
	deps Dependencies
}

func NewCheckCommandFactory(deps Dependencies) *CheckCommandFactory {
	return &CheckCommandFactory{deps: deps}
}

func (f *CheckCommandFactory) CreateCommand(t *i18n.Translations, _ *config.Config) *cli.Command {
	return &cli.Command{
		Name:        "check",
		Usage:       t.GetMessage("check.command_usage", 0, nil),
		ArgsUsage:   "[revision]",
		Description: t.GetMessage("check.flag_revision", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "repo", Aliases: []string{"C"}, Value: ".", Usage: t.GetMessage("check.flag_repo", 0, nil)},
			&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Usage: t.GetMessage("check.flag_message", 0, nil)},
			&cli.StringFlag{Name: "ref", Usage: t.GetMessage("check.flag_ref", 0, nil)},
			&cli.StringFlag{Name: "repository", Usage: t.GetMessage("check.flag_repository", 0, nil)},
		},
		Action: f.checkAction(t),
	}
}

func (f *CheckCommandFactory) checkAction(t *i18n.Translations) cli.ActionFunc {
	return func(ctx context.Context, command *cli.Command) error {
		commit, err := f.readCommit(ctx, command)
		if err != nil {
			return err
		}

		validator, err := f.deps.GetValidator()
		if err != nil {
			return err
		}

		messages, err := validator.Validate(ctx, commit)
		var rejected *domainErrors.CommitRejectedError
		if errors.As(err, &rejected) {
			ui.PrintValidation(command.Root().Writer, commit, rejected.Messages, true, t)
			return appErrors.ErrCommitRejected.WithError(rejected).WithContext("commit", commit.ShortID())
		}
		if err != nil {
			return err
		}

		ui.PrintValidation(command.Root().Writer, commit, messages, false, t)
		return nil
	}
}

// readCommit loads the commit from the repository and applies the overrides
// given on the command line.
func (f *CheckCommandFactory) readCommit(ctx context.Context, command *cli.Command) (models.Commit, error) {
	gitService, err := f.deps.GetGitService(command.String("repo"))
	if err != nil {
		return models.Commit{}, err
	}

	revision := command.Args().First()
	commit, err := gitService.ReadCommit(ctx, revision)
	if err != nil {
		return models.Commit{}, err
	}

	if v := command.String("message"); v != "" {
		commit.Message = v
	}
	if v := command.String("ref"); v != "" {
		commit.Ref = v
	}
	if v := command.String("repository"); v != "" {
		commit.Repository = v
	}

	logger.Debug(ctx, "commit to validate", "repository", commit.Repository, "ref", commit.Ref, "commit", commit.ShortID())
	return commit, nil
}
