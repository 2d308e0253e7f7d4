package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"gridfall.gg/internal/config"
	"gridfall.gg/internal/game"
	"gridfall.gg/internal/sessiondb"
	"gridfall.gg/internal/trace"
	"gridfall.gg/internal/transport/ws"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to client.yaml (optional)")
		url        = flag.String("url", "", "server ws url (overrides config)")
		name       = flag.String("name", "", "player name (overrides config)")
		traceDir   = flag.String("trace", "", "wire trace directory (overrides config)")
		dbPath     = flag.String("db", "", "session index sqlite path (overrides config)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[client] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if s := strings.TrimSpace(*url); s != "" {
		cfg.ServerURL = s
	}
	if s := strings.TrimSpace(*name); s != "" {
		cfg.PlayerName = s
	}
	if s := strings.TrimSpace(*traceDir); s != "" {
		cfg.TraceDir = s
	}
	if s := strings.TrimSpace(*dbPath); s != "" {
		cfg.SessionDB = s
	}

	session, err := ws.Dial(cfg.ServerURL)
	if err != nil {
		logger.Fatalf("connect: %v", err)
	}

	var opts []game.Option
	if cfg.TraceDir != "" {
		rec := trace.NewRecorder(cfg.TraceDir, "wire")
		defer rec.Close()
		opts = append(opts, game.WithTrace(rec))
	}

	var db *sessiondb.DB
	if cfg.SessionDB != "" {
		db, err = sessiondb.Open(cfg.SessionDB)
		if err != nil {
			logger.Fatalf("open session db: %v", err)
		}
		defer db.Close()
		opts = append(opts, game.WithChatRecorder(db))
	}

	client := game.NewClient(cfg, session, logger, opts...)
	if err := client.Handshake(cfg.PlayerName); err != nil {
		logger.Fatalf("handshake: %v", err)
	}
	if db != nil {
		if _, err := db.StartSession(client.PlayerID(), cfg.PlayerName); err != nil {
			logger.Printf("session db: %v", err)
		}
	}

	go client.RunReceiver()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.TickRateHz))
	defer ticker.Stop()

	status := time.NewTicker(5 * time.Second)
	defer status.Stop()

	for {
		select {
		case <-stop:
			logger.Printf("shutting down")
			client.Goodbye()
			if db != nil {
				_ = db.EndSession("")
			}
			return

		case <-status.C:
			pos := client.Local().Position()
			logger.Printf("pos=(%.1f,%.1f) chunks=%d players=%d chat=%d",
				pos.X, pos.Y, client.Store().Len(), len(client.OtherPlayers()), len(client.ChatMessages()))

		case <-ticker.C:
			client.Tick()
			if client.Terminated() {
				if reason := client.KickReason(); reason != "" {
					logger.Printf("kicked: %s", reason)
				} else {
					logger.Printf("connection lost")
				}
				if db != nil {
					_ = db.EndSession(client.KickReason())
				}
				return
			}
		}
	}
}
