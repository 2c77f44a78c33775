// Command api serves the programming vocabulary API.
package main

import (
	"context"
	"log/slog"
	"os"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("api stopped", "error", err)
		os.Exit(1)
	}
}
