package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/punchamoorthee/bankops/internal/api"
	"github.com/punchamoorthee/bankops/internal/bank"
	"github.com/punchamoorthee/bankops/internal/config"
)

func main() {
	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	engine := bank.New()
	handler := api.NewHandler(engine)
	router := api.NewRouter(handler)

	slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
