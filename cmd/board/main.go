// Command board is the terminal Kanban board of the Planejão API.
package main

import (
	"fmt"
	"os"
	"strings"

	"planejao/internal/board"
	"planejao/internal/config"
	"planejao/internal/domain/entities"
	"planejao/internal/infrastructure/apiclient"
	"planejao/internal/infrastructure/logging"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

var _ board.Remote = (*apiclient.Client)(nil)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var apiURL string

	root := &cobra.Command{
		Use:          "board",
		Short:        "Planejão project board",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (defaults to PLANEJAO_API_URL)")

	clientFor := func() (*apiclient.Client, error) {
		cfg, err := config.LoadClient()
		if err != nil {
			return nil, err
		}
		if apiURL != "" {
			cfg.BaseURL = apiURL
		}
		logging.InitLogger(logging.Options{ServiceName: "planejao-board", Level: cfg.LogLevel})
		return apiclient.NewFromConfig(cfg), nil
	}

	root.AddCommand(newShowCmd(clientFor), newMoveCmd(clientFor), newReportCmd(clientFor))
	return root
}

func newShowCmd(clientFor func() (*apiclient.Client, error)) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the board columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := clientFor()
			if err != nil {
				return err
			}
			b := board.New(client, board.LogNotifier{})
			if err := b.Load(cmd.Context()); err != nil {
				return err
			}

			only := entities.ProjectStatus(strings.ToUpper(strings.TrimSpace(status)))
			if only != "" && !only.IsValid() {
				return fmt.Errorf("unknown status %q", status)
			}
			renderColumns(cmd.OutOrStdout(), b.Columns(), only)
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only print this column")
	return cmd
}

func newMoveCmd(clientFor func() (*apiclient.Client, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "move <project-id> <status>",
		Short: "Move a project to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := clientFor()
			if err != nil {
				return err
			}
			b := board.New(client, board.LogNotifier{})
			if err := b.Load(cmd.Context()); err != nil {
				return err
			}

			target := entities.ProjectStatus(strings.ToUpper(strings.TrimSpace(args[1])))
			p, err := b.Move(cmd.Context(), args[0], target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", p.Name, p.Status.Label())
			return nil
		},
	}
}

func newReportCmd(clientFor func() (*apiclient.Client, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print the portfolio KPIs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := clientFor()
			if err != nil {
				return err
			}
			report, err := client.Report(cmd.Context())
			if err != nil {
				return err
			}
			renderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
}
