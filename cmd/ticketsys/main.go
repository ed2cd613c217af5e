package main

import (
	"os"

	"github.com/spf13/cobra"

	"ticketsys/internal/interfaces/cli/migrate"
	"ticketsys/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ticketsys",
		Short: "Role-based IT support ticketing service",
		Long:  `Ticketsys serves a role-based support ticket API with audit logging, email notifications and administrative tooling.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
