// Command web runs the insight dashboard API server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"insightcli/internal/app"
)

func main() {
	application, err := app.NewApplication()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		application.Logger.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
