package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/jask/adminpanel/internal/admin"
	"github.com/jask/adminpanel/internal/api"
	"github.com/jask/adminpanel/internal/api/memory"
	"github.com/jask/adminpanel/internal/config"
	"github.com/jask/adminpanel/internal/tui"
)

func main() {
	fs := pflag.NewFlagSet("adminpanel", pflag.ExitOnError)
	fs.String("api-base-url", "", "backend base URL")
	fs.Duration("ui-notice-ttl", 0, "how long notifications stay visible")
	fs.String("log-path", "", "log file (empty disables logging)")
	fs.String("log-level", "", "debug, info, warn or error")
	offline := fs.Bool("offline", false, "use in-memory demo data instead of the backend")
	writeConfig := fs.Bool("write-config", false, "write the effective configuration and exit")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(fs)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if *writeConfig {
		if err := config.Save(cfg); err != nil {
			log.Fatalf("save config: %v", err)
		}
		fmt.Println("wrote", config.Path())
		return
	}

	logger, closeLog, err := openLog(cfg.Log)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()

	var gw api.Gateway = api.NewHTTPGateway(cfg.API.BaseURL)
	backend := cfg.API.BaseURL
	if *offline {
		mem := memory.New()
		mem.Seed(demoClients, demoProducts, demoOrders)
		gw = mem
		backend = "offline demo"
	}
	logger.Info("starting", "backend", backend, "notice_ttl", cfg.UI.NoticeTTL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := admin.New(ctx, gw,
		admin.WithLogger(logger),
		admin.WithNoticeTTL(cfg.UI.NoticeTTL),
	)
	app := tui.New(ctrl,
		tui.WithCurrency(cfg.UI.CurrencySymbol),
		tui.WithBackend(backend),
		tui.WithLogger(logger),
	)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// openLog sends slog output to cfg.Path. The terminal belongs to the UI, so
// nothing is written to stderr while it runs.
func openLog(cfg config.LogConfig) (*slog.Logger, func(), error) {
	if cfg.Path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := tea.LogToFile(cfg.Path, "adminpanel")
	if err != nil {
		return nil, nil, err
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.SlogLevel()})
	return slog.New(h), func() { _ = f.Close() }, nil
}
