package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "pizzeria",
	Short:         "Pizza delivery API server and admin console",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Admin
	rootCmd.AddCommand(tokensSweepCmd)
	rootCmd.AddCommand(usersListCmd)
	rootCmd.AddCommand(usersShowCmd)
	rootCmd.AddCommand(menuListCmd)
	rootCmd.AddCommand(statsCmd)
}
