package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/pizzeria/app/controllers"
	"github.com/shashiranjanraj/pizzeria/internal/server"
	"github.com/shashiranjanraj/pizzeria/pkg/resource"
)

func boot(cmd *cobra.Command) (*server.App, context.Context, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := server.Boot(ctx)
	return app, ctx, err
}

// pizzeria tokens:sweep: delete expired tokens once.
var tokensSweepCmd = &cobra.Command{
	Use:   "tokens:sweep",
	Short: "Delete expired session tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ctx, err := boot(cmd)
		if err != nil {
			return err
		}
		res, err := app.Sweeper.Sweep(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("checked %d, deleted %d, failed %d\n", res.Checked, res.Deleted, res.Failed)
		return nil
	},
}

// pizzeria users:list: print every registered email.
var usersListCmd = &cobra.Command{
	Use:   "users:list",
	Short: "List registered users",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ctx, err := boot(cmd)
		if err != nil {
			return err
		}
		emails, err := app.Users.Emails(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "EMAIL\tNAME\tCART")
		for _, email := range emails {
			u, err := app.Users.Get(ctx, email)
			if err != nil {
				fmt.Fprintf(w, "%s\t?\t?\n", email)
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", u.Email, u.FullName(), u.Cart)
		}
		return w.Flush()
	},
}

var showEmail string

// pizzeria users:show --email=...: print one user without the password hash.
var usersShowCmd = &cobra.Command{
	Use:   "users:show",
	Short: "Show one user",
	RunE: func(cmd *cobra.Command, args []string) error {
		if showEmail == "" {
			return fmt.Errorf("--email is required")
		}
		app, ctx, err := boot(cmd)
		if err != nil {
			return err
		}
		u, err := app.Users.Get(ctx, showEmail)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resource.One(controllers.UserResource, u))
	},
}

func init() {
	usersShowCmd.Flags().StringVar(&showEmail, "email", "", "email address of the user")
}

// pizzeria menu:list: print the menu.
var menuListCmd = &cobra.Command{
	Use:   "menu:list",
	Short: "List the pizzas on the menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, err := boot(cmd)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "CODE\tNAME\tPRICE")
		for _, item := range app.Menu.Items() {
			fmt.Fprintf(w, "%d\t%s\t%.2f\n", item.Code, item.Name, item.Price)
		}
		return w.Flush()
	},
}

// pizzeria stats: runtime and storage statistics.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show runtime and storage statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, ctx, err := boot(cmd)
		if err != nil {
			return err
		}

		var mem runtime.MemStats
		runtime.ReadMemStats(&mem)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintf(w, "CPU Count\t%d\n", runtime.NumCPU())
		fmt.Fprintf(w, "Goroutines\t%d\n", runtime.NumGoroutine())
		fmt.Fprintf(w, "Heap In Use\t%d KiB\n", mem.HeapInuse/1024)
		fmt.Fprintf(w, "Heap Reserved\t%d KiB\n", mem.HeapSys/1024)
		fmt.Fprintf(w, "Total From OS\t%d KiB\n", mem.Sys/1024)

		for _, collection := range []string{"users", "tokens", "carts", "orders"} {
			ids, err := app.Store.List(ctx, collection)
			if err != nil {
				fmt.Fprintf(w, "%s\terror: %v\n", collection, err)
				continue
			}
			fmt.Fprintf(w, "%s\t%d\n", collection, len(ids))
		}
		return w.Flush()
	},
}
