package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tomas-vilte/issuegate/internal/config"
	"github.com/Tomas-vilte/issuegate/internal/domain/ports"
	"github.com/Tomas-vilte/issuegate/internal/i18n"
	"github.com/Tomas-vilte/issuegate/internal/metrics"
	"github.com/Tomas-vilte/issuegate/internal/server"
	"github.com/Tomas-vilte/issuegate/internal/ui"
	"github.com/urfave/cli/v3"
)

type Dependencies interface {
	GetValidator() (ports.CommitValidator, error)
	GetMetrics() *metrics.Metrics
}

type ServeCommandFactory struct {
	deps Dependencies
}

func NewServeCommandFactory(deps Dependencies) *ServeCommandFactory {
	return &ServeCommandFactory{deps: deps}
}

func (f *ServeCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: t.GetMessage("serve.command_usage", 0, nil),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: cfg.Server.Address, Usage: t.GetMessage("serve.flag_addr", 0, nil)},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			validator, err := f.deps.GetValidator()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := command.String("addr")
			ui.PrintInfo(command.Root().Writer, t.GetMessage("serve.listening", 0, map[string]interface{}{"Address": addr}))
			return server.New(validator, f.deps.GetMetrics()).ListenAndServe(ctx, addr)
		},
	}
}
