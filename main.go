package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/drone-battle/core/config"
	"github.com/drone-battle/core/runner"
	"github.com/drone-battle/core/telemetry"
	"github.com/drone-battle/core/transport"
)

const banner = `
██████╗ ██████╗  ██████╗ ███╗   ██╗███████╗
██╔══██╗██╔══██╗██╔═══██╗████╗  ██║██╔════╝
██║  ██║██████╔╝██║   ██║██╔██╗ ██║█████╗
██║  ██║██╔══██╗██║   ██║██║╚██╗██║██╔══╝
██████╔╝██║  ██║╚██████╔╝██║ ╚████║███████╗
╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═══╝╚══════╝

Autonomous Arena Drone`

func main() {
	cmd := &cli.Command{
		Name:  "drone-battle",
		Usage: "connect an autonomous drone to an arena server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "debug, info, warn, or error",
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "server address as host:port, overrides the config file's url",
			},
			&cli.StringFlag{
				Name:  "telemetry-addr",
				Value: ":8090",
				Usage: "telemetry websocket listen address",
			},
		},
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "config-path", UsageText: "path to a JSON config file (optional)"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cmd.String("log-level")),
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	cfg := loadConfig(cmd.StringArg("config-path"))
	if addr := cmd.String("addr"); addr != "" {
		cfg.URL = addr
	}

	slog.Info("starting drone", "name", cfg.Name, "url", cfg.URL, "graphics", cfg.Graphics)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var sink *telemetry.Sink
	if cfg.Graphics {
		sink = telemetry.NewSink(cfg.Name)
		telemetryAddr := cmd.String("telemetry-addr")
		go func() {
			if err := sink.ListenAndServe(telemetryAddr); err != nil {
				slog.Error("telemetry server stopped", "error", err)
			}
		}()
		slog.Info("telemetry listening", "addr", telemetryAddr)
	}

	conn, err := transport.Dial(ctx, serverAddr(cfg.URL))
	if err != nil {
		return fmt.Errorf("dial server: %w", err)
	}
	defer conn.Close()

	r := runner.New(conn, cfg, sink)
	if err := r.Run(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run: %w", err)
	}

	slog.Info("shutting down")
	return nil
}

func loadConfig(path string) config.Config {
	if path == "" {
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		slog.Warn("falling back to default config", "path", path, "error", err)
	}
	return cfg
}

// serverAddr appends the protocol's default port if url doesn't already
// carry one.
func serverAddr(url string) string {
	if _, _, err := net.SplitHostPort(url); err == nil {
		return url
	}
	return strings.TrimSuffix(url, ":") + ":" + strconv.Itoa(transport.DefaultPort)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
