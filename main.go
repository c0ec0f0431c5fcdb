package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"chefboard/api"
	"chefboard/client"
	"chefboard/config"
	"chefboard/db"
	"chefboard/notify"
	"chefboard/orderfeed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrate(cfg)
			return
		case "feed":
			runFeed(cfg)
			return
		}
	}

	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	// Optional auto-migration (useful in production and for fresh DBs).
	// Set AUTO_MIGRATE=1 (or "true") to enable.
	if v := strings.TrimSpace(os.Getenv("AUTO_MIGRATE")); v == "1" || strings.EqualFold(v, "true") {
		if err := applyMigrations(context.Background(), false); err != nil {
			fmt.Fprintln(os.Stderr, "migrate:", err)
			os.Exit(1)
		}
	}

	r := api.NewRouter()
	fmt.Println("Gateway listening on", cfg.HTTP.Addr)
	if err := r.Run(cfg.HTTP.Addr); err != nil {
		fmt.Fprintln(os.Stderr, "http:", err)
		os.Exit(1)
	}
}

func runMigrate(cfg *config.Config) {
	if err := db.Init(cfg.DB); err != nil {
		fmt.Fprintln(os.Stderr, "db:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := applyMigrations(context.Background(), true); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

// runFeed watches the seller's orders against a remote gateway and beeps
// (and optionally messages Telegram) when new ones arrive. Ctrl-C exits,
// which is the "operator leaves the active-orders view" of a terminal.
func runFeed(cfg *config.Config) {
	if cfg.Feed.SellerID == "" {
		fmt.Fprintln(os.Stderr, "SELLER_ID not set")
		os.Exit(1)
	}

	alerters := notify.Multi{notify.NewBell(os.Stdout)}
	if cfg.Telegram.Token != "" && cfg.Telegram.AlertChatID != 0 {
		tg, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.AlertChatID)
		if err != nil {
			fmt.Fprintln(os.Stderr, "telegram:", err)
			os.Exit(1)
		}
		alerters = append(alerters, tg)
	}

	gw := client.New(cfg.Feed.GatewayURL, cfg.Feed.SellerID)
	feed := orderfeed.New(gw, alerters, time.Duration(cfg.Feed.PollIntervalSeconds)*time.Second)
	feed.OnError = func(err error) {
		fmt.Fprintln(os.Stderr, "feed:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching orders for %s every %ds. Ctrl-C to stop.\n",
		cfg.Feed.SellerID, cfg.Feed.PollIntervalSeconds)
	feed.Run(ctx)
	fmt.Println("Feed stopped.")
}
