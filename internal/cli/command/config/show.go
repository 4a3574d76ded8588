package config

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Tomas-vilte/issuegate/internal/config"
	"github.com/Tomas-vilte/issuegate/internal/i18n"
	"github.com/urfave/cli/v3"
)

func (c *ConfigCommandFactory) newShowCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: t.GetMessage("config.show_usage", 0, nil),
		Action: func(_ context.Context, command *cli.Command) error {
			data, err := json.MarshalIndent(cfg.Masked(), "", "  ")
			if err != nil {
				return fmt.Errorf("error encoding configuration: %w", err)
			}
			_, err = fmt.Fprintln(command.Root().Writer, string(data))
			return err
		},
	}
}
