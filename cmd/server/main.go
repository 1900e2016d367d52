package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/splitfool/splitfool/internal/auth"
	"github.com/splitfool/splitfool/internal/config"
	"github.com/splitfool/splitfool/internal/server"
	"github.com/splitfool/splitfool/internal/service"
	"github.com/splitfool/splitfool/internal/storage/sqlite"
	"github.com/splitfool/splitfool/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	balances := service.NewBalanceService(store)
	bills := service.NewBillService(store)
	users := service.NewUserService(store, balances)

	jwtManager := auth.NewJWTManager(cfg.AuthSecret, cfg.TokenDuration)
	handler := server.New(users, bills, balances, jwtManager, cfg.AdminPasswordHash)

	// h2c allows HTTP/2 without TLS for local and reverse-proxied setups.
	h2cHandler := h2c.NewHandler(handler.Router(jwtManager), &http2.Server{})

	addr := fmt.Sprintf(":%s", cfg.Port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
