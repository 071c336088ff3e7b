package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/laserhop/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP/WebSocket server",
	Long: `Serve Laser Hop to browsers.

Every WebSocket connection on /ws plays its own run:
  ws://host/ws?mode=endless&player=ann
  ws://host/ws?level=2

Commands are JSON messages: {"type":"tap","index":N}, {"type":"laser"},
{"type":"restart"} and {"type":"next"}. The server answers with "state",
"outcome" and "error" events.

HTTP endpoints:
  GET /api/levels         - Campaign layouts
  GET /api/scores/{mode}  - Top runs for campaign or endless (?limit=N)
  GET /api/stats          - Per-mode statistics
  GET /healthz            - Liveness and session count

Examples:
  laserhop web
  laserhop web --addr :9000 --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server := web.NewServer(store, loadSettings(),
		web.WithLogger(logger.WithPrefix("laserhop-web")),
		web.WithSeed(flagSeed),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting Laser Hop web server on %s\n", flagWebAddr)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx, flagWebAddr); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
