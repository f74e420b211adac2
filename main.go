package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ZionLG/aurora4x-advisor/analyzer"
	"github.com/ZionLG/aurora4x-advisor/ipc"
	"github.com/ZionLG/aurora4x-advisor/profile"
	"github.com/ZionLG/aurora4x-advisor/service"
	"github.com/ZionLG/aurora4x-advisor/snapshot"
)

const banner = `
 █████╗ ██████╗ ██╗   ██╗██╗███████╗ ██████╗ ██████╗
██╔══██╗██╔══██╗██║   ██║██║██╔════╝██╔═══██╗██╔══██╗
███████║██║  ██║██║   ██║██║███████╗██║   ██║██████╔╝
██╔══██║██║  ██║╚██╗ ██╔╝██║╚════██║██║   ██║██╔══██╗
██║  ██║██████╔╝ ╚████╔╝ ██║███████║╚██████╔╝██║  ██║
╚═╝  ╚═╝╚═════╝   ╚═══╝  ╚═╝╚══════╝ ╚═════╝ ╚═╝  ╚═╝

Aurora 4X Campaign Advisor`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	// Optional; the shell normally passes everything through the environment.
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment")
	}

	socketPath := envOr("ADVISOR_SOCKET", "/tmp/aurora-advisor.sock")
	bundledDir := envOr("ADVISOR_BUNDLED_CONFIG", "config")
	userDir := envOr("ADVISOR_USER_CONFIG", "")
	dbPath := envOr("ADVISOR_AURORA_DB", "")
	snapshotRoot := envOr("ADVISOR_SNAPSHOT_ROOT", "snapshots")
	pollInterval := snapshot.DefaultInterval
	if raw := os.Getenv("ADVISOR_POLL_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			slog.Error("invalid ADVISOR_POLL_INTERVAL", "value", raw, "error", err)
			os.Exit(1)
		}
		pollInterval = d
	}

	slog.Info("starting advisor", "bundledConfig", bundledDir, "userConfig", userDir, "auroraDb", dbPath)

	repo := profile.NewRepository(bundledDir, userDir)
	an, err := analyzer.New(repo)
	if err != nil {
		slog.Error("failed to build analyzer", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var watcher *snapshot.Watcher
	if dbPath != "" {
		watcher = snapshot.NewWatcher(dbPath, snapshotRoot, pollInterval)
		go watcher.Run(ctx)
	} else {
		slog.Warn("no database configured, snapshotting disabled")
	}

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", socketPath, "error", err)
		os.Exit(1)
	}
	defer listener.Close()
	defer os.Remove(socketPath)

	slog.Info("listening on domain socket", "path", socketPath)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go handleConn(conn, repo, an, watcher)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
}

func handleConn(conn net.Conn, repo *profile.Repository, an *analyzer.Analyzer, watcher *snapshot.Watcher) {
	c := ipc.NewConnection(conn, nil)
	svc := service.New(c, repo, an, watcher)
	svc.Register()
	if watcher != nil {
		// Single-shell app: the latest connection owns the advice pushes.
		watcher.OnSnapshot(svc.HandleSnapshot)
	}
	c.ReadLoop()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
