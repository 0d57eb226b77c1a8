// Command server runs the pizzeria HTTP server without the admin console.
package main

import (
	"os"

	"github.com/shashiranjanraj/pizzeria/internal/server"
	"github.com/shashiranjanraj/pizzeria/pkg/logger"
)

func main() {
	if err := server.Start(); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
