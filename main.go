package main

import (
	"fmt"
	"os"
	"strings"

	bidding "huddle-auction/internal/biddingService"
	"huddle-auction/internal/clock"
	"huddle-auction/internal/currency"
	"huddle-auction/internal/events"
	huddle "huddle-auction/internal/huddleService"
	identity "huddle-auction/internal/identityService"
	"huddle-auction/internal/repository"
	reputation "huddle-auction/internal/reputationService"
	"huddle-auction/internal/server"
	"huddle-auction/internal/socialproof"
	"huddle-auction/utils"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the process configuration, resolved from flags with
// HUDDLE_-prefixed environment overrides.
type Config struct {
	ListenAddr  string
	LogLevel    string
	SeedBalance uint64
}

func main() {
	cfg := parseConfig()
	utils.SetLevel(cfg.LogLevel)

	store := repository.NewMemoryStore()
	ledger := currency.NewSeededLedger(cfg.SeedBalance)
	sink := events.LogSink{}

	identitySvc := identity.NewIdentityService(store, socialproof.LinkVerifier{}, sink)
	huddleSvc := huddle.NewHuddleService(store, identitySvc, ledger, clock.SystemClock{}, sink)
	biddingSvc := bidding.NewBiddingService(store, ledger, clock.SystemClock{}, sink)
	reputationSvc := reputation.NewReputationService(store, sink)

	router := server.SetupRouter(identitySvc, huddleSvc, biddingSvc, reputationSvc)

	fmt.Printf("Starting huddle auction server on %s...\n", cfg.ListenAddr)
	if err := router.Run(cfg.ListenAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// parseConfig resolves flags, binding them to viper so every option can also
// be set through the environment (e.g. HUDDLE_LISTEN_ADDR).
func parseConfig() Config {
	pflag.String("listen-addr", ":8080", "address the HTTP server listens on")
	pflag.String("log-level", "info", "log level (debug, info, warn, error)")
	pflag.Uint64("seed-balance", 0, "free balance credited to accounts on first sight (dev only)")

	pflag.Parse()
	viper.BindPFlags(pflag.CommandLine)
	viper.AutomaticEnv()
	viper.SetEnvPrefix("HUDDLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	return Config{
		ListenAddr:  viper.GetString("listen-addr"),
		LogLevel:    viper.GetString("log-level"),
		SeedBalance: viper.GetUint64("seed-balance"),
	}
}
