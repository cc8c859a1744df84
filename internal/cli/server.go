package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/LeJamon/goAuctiond/internal/metrics"
	"github.com/LeJamon/goAuctiond/internal/rpc"
	"github.com/LeJamon/goAuctiond/internal/rpc/rpc_types"
)

const (
	requestTimeout = 30 * time.Second
	statusInterval = time.Minute
)

var (
	// Server flags
	rpcAddress string
	standalone bool
)

// serverCmd represents the server command (default action)
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the auctiond server",
	Long: `Start the auctiond server which provides:
- HTTP JSON-RPC API endpoints
- WebSocket event stream on /ws (server.enable_websocket)
- Prometheus metrics on /metrics (server.enable_metrics)

This is the default command when no subcommand is specified.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// Set server as the default command
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return serverCmd.RunE(cmd, args)
	}

	serverCmd.Flags().StringVar(&rpcAddress, "rpc", "", "RPC listen address (overrides server.rpc_address)")
	serverCmd.Flags().BoolVar(&standalone, "standalone", false, "run standalone (overrides engine.standalone)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if rpcAddress != "" {
		cfg.Server.RPCAddress = rpcAddress
	}
	if standalone {
		cfg.Engine.Standalone = true
	}
	log := newLogger(cfg)
	metrics.BuildInfo.WithLabelValues(Version, Commit).Set(1)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	n, err := openNode(ctx, cfg, log, true)
	if err != nil {
		return err
	}
	defer func() {
		if err := n.Close(); err != nil {
			log.Error("close failed", "error", err)
		}
	}()

	log.Info("auctiond starting",
		"version", Version,
		"config", cfg.ConfigPath(),
		"state", cfg.Database.Backend,
		"history", cfg.History.Backend,
		"standalone", cfg.Engine.Standalone)

	services := &rpc_types.ServiceContainer{
		Ledger:       n.ledger,
		AdminSigning: cfg.Server.AdminSigning,
		Version:      Version,
	}
	rpcServer := rpc.NewServer(services, requestTimeout, log)
	httpServer := rpc.NewHTTPServer(rpc.HTTPConfig{
		Address:         cfg.Server.RPCAddress,
		EnableWebsocket: cfg.Server.EnableWebsocket,
		EnableMetrics:   cfg.Server.EnableMetrics,
	}, rpcServer, n.ledger.Events())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpServer.ListenAndServe(gctx, cfg.Server.ShutdownTimeout)
	})
	g.Go(func() error {
		reportStatus(gctx, n, log)
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("rpc server: %w", err)
	}
	log.Info("auctiond stopped", "applied", n.ledger.Applied())
	return nil
}

// reportStatus logs the ledger counters until ctx is done.
func reportStatus(ctx context.Context, n *node, log *slog.Logger) {
	ticker := n.ledger.Clock().NewTicker(statusInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			auctions, err := n.ledger.Auctions()
			if err != nil {
				log.Warn("status: list auctions", "error", err)
				continue
			}
			log.Info("status", "applied", n.ledger.Applied(), "open_auctions", len(auctions),
				"subscribers", n.ledger.Events().Len())
		}
	}
}
