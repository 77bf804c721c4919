package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for the taskmanager CLI.
func NewRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "taskmanager",
		Short: "Task manager API server",
		Long: `Task manager API server. Users register, log in for a bearer token
and manage their own tasks through a JSON API.`,
		SilenceUsage: true,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	cmd.AddCommand(NewServeCmd(&configFile))
	cmd.AddCommand(NewMigrateCmd(&configFile))
	cmd.AddCommand(NewHashPasswordCmd())

	return cmd
}
