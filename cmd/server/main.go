// Command server runs the transliteration HTTP service.
//
// Configuration comes from CONFIG_PATH (YAML) and environment
// variables; see internal/config for the full set.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/gujarati-xlit/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("run: %v", err)
	}
}
