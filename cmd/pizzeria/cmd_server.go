package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/pizzeria/app/controllers"
	"github.com/shashiranjanraj/pizzeria/app/routes"
	"github.com/shashiranjanraj/pizzeria/internal/kernel"
	"github.com/shashiranjanraj/pizzeria/internal/server"
	"github.com/shashiranjanraj/pizzeria/pkg/router"
)

// pizzeria serve: start the HTTP server and the token sweeper.
var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"run"},
	Short:   "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}

// pizzeria route:list: print all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Handlers are never invoked here, so the controllers need no services.
		c := controllers.New(controllers.Deps{})
		r := kernel.New(
			func(r *router.Router) { routes.RegisterAPI(r, c) },
			func(r *router.Router) { routes.RegisterWeb(r, c) },
		)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range r.Routes() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
