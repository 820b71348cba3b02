package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	gameclient "github.com/ovalle/stockpile/internal/client"
	"github.com/ovalle/stockpile/internal/config"
	"github.com/ovalle/stockpile/internal/identity"
	"github.com/ovalle/stockpile/internal/logger"
	netclient "github.com/ovalle/stockpile/internal/network/client"
	"github.com/ovalle/stockpile/internal/ui"
	"github.com/ovalle/stockpile/internal/ui/model"
)

func main() {
	configPath := flag.String("config", "", "config file path")
	serverURL := flag.String("server", "", "server websocket URL (overrides config)")
	flag.Parse()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config %s: %v", *configPath, err)
		}
		cfg = loaded
	}
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}

	session, err := identity.OpenDefault()
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}

	channel := netclient.New(cfg.Server.URL, cfg.Server.ReconnectAttempts, cfg.Server.ReconnectDelay())
	defer channel.Close()

	store := gameclient.NewStore(session, cfg.Server.SessionInvalidMarkers)

	m := model.New(cfg, session, channel, store)
	if err := m.Sounds.Init(); err != nil {
		logger.LogError("sound init: %v", err)
	}
	defer m.Sounds.Close()

	p := tea.NewProgram(ui.NewApp(m), tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		log.Fatalf("client error: %v", err)
	}
}
