package main

import (
	"github.com/sirupsen/logrus"

	"github.com/akazantsev/kopilka/internal/bot"
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

	b, err := bot.NewBot(cfg.TelegramToken, tracker)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := b.Start(); err != nil {
		logrus.Fatal(err)
	}
}
