package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"epic-events-crm/auth"
	clients_repositories "epic-events-crm/clients/repositories"
	clients_services "epic-events-crm/clients/services"
	collaborators_services "epic-events-crm/collaborators/services"
	contracts_services "epic-events-crm/contracts/services"
	"epic-events-crm/config"
	"epic-events-crm/controllers"
	events_services "epic-events-crm/events/services"
	"epic-events-crm/internal/bootstrap"
	"epic-events-crm/seeds"
	"epic-events-crm/views"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "crm",
	Short:         "Epic Events CRM: clients, contracts and events",
	Long:          "Log in as a collaborator and work through the menu of your role.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		authorizer := auth.NewGroupAuthorizer(a.db)
		services := controllers.Services{
			Collaborators: collaborators_services.NewCollaboratorService(a.db, authorizer),
			Clients:       clients_services.NewClientService(a.db, a.search),
			Contracts:     contracts_services.NewContractService(a.db),
			Events:        events_services.NewEventService(a.db),
		}

		terminal := views.NewTerminal(os.Stdin, os.Stdout)
		controller := controllers.NewMainController(services, authorizer, terminal,
			controllers.WithAuditSink(a.audit),
			controllers.WithMetrics(a.metrics),
			controllers.WithMaxLoginAttempts(a.cfg.MaxLoginAttempts),
		)
		return controller.Start(cmd.Context())
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create permission groups and the initial collaborators",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		if err := seeds.SeedAll(a.db); err != nil {
			config.Logger.Error("Database seeding failed", zap.Error(err))
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Groups, permissions and initial collaborators are ready.")
		return nil
	},
}

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the client search index from the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		n, err := bootstrap.IndexBleveData(clients_repositories.NewClientRepository(a.db), a.search)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d clients indexed.\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd, reindexCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		switch {
		case errors.Is(err, controllers.ErrInterrupted):
			fmt.Fprintln(os.Stderr)
			os.Exit(130)
		case !errors.Is(err, controllers.ErrLoginFailed):
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
