package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/akazantsev/kopilka/internal/api"
	"github.com/akazantsev/kopilka/internal/config"
	"github.com/akazantsev/kopilka/internal/repository"
	"github.com/akazantsev/kopilka/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal(err)
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		logrus.Fatal(err)
	}

	tracker := service.NewFinanceTracker(repo)
	server := api.NewServer(tracker)

	logrus.Infof("listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, server.Router()); err != nil {
		logrus.Fatal(err)
	}
}
