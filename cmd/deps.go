package cmd

import (
	"fmt"
	"log/slog"

	"github.com/abhisek/voltquest/internal/config"
	"github.com/abhisek/voltquest/internal/consumption"
	"github.com/abhisek/voltquest/internal/game"
	"github.com/abhisek/voltquest/internal/quiz"
)

// buildGame assembles an unstarted game from configuration.
func buildGame(cfg *config.Config, logger *slog.Logger, onScored func(*quiz.Result)) (*game.Game, *quiz.Bank, error) {
	calc, err := consumption.NewCalculator(cfg.Consumption())
	if err != nil {
		return nil, nil, fmt.Errorf("calculator: %w", err)
	}
	engine, err := cfg.Engine()
	if err != nil {
		return nil, nil, fmt.Errorf("shuffle engine: %w", err)
	}
	bank, err := cfg.Bank()
	if err != nil {
		return nil, nil, fmt.Errorf("question bank: %w", err)
	}
	g, err := game.New(game.Options{
		Calculator:   calc,
		Generator:    quiz.NewGenerator(engine),
		Bank:         bank.Questions,
		SessionSize:  cfg.SessionSize,
		PassPercent:  cfg.PassPercent,
		HistoryCap:   cfg.HistoryCap,
		Logger:       logger,
		OnQuizScored: onScored,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("build game: %w", err)
	}
	return g, bank, nil
}
