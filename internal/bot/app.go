package bot

import (
	"context"
	"fmt"
	"log/slog"

	coreconfig "quizbot/core/config"
	"quizbot/core/database"
	"quizbot/core/logger"
	tg "quizbot/core/telegram"
	"quizbot/core/telegram/commands"
	"quizbot/core/telegram/router"
	"quizbot/internal/category"
	"quizbot/internal/quiz"
	"quizbot/internal/score"
)

// App owns the bot's services and runs the Telegram loop.
type App struct {
	cfg      *coreconfig.Config
	handlers *Handlers
}

// NewApp opens storage, applies migrations, loads categories and builds
// the controller. Any failure here aborts startup.
func NewApp(cfg *coreconfig.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bot: nil config")
	}

	if err := database.RunMigrations(cfg.Database); err != nil {
		return nil, fmt.Errorf("bot: migrations: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("bot: open database: %w", err)
	}

	cats, err := category.Load(cfg.Quiz.CategoriesDir)
	if err != nil {
		return nil, err
	}

	handlers := NewHandlers(
		category.NewStore(cats),
		quiz.NewManager(cfg.Quiz.QuestionsPerRound),
		score.NewStore(db),
		cfg.Quiz.LeaderboardLimit,
	)

	return &App{cfg: cfg, handlers: handlers}, nil
}

// Run blocks serving updates until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	reg := tg.NewRegistry()
	a.registerCommands(reg)
	a.registerCallbacks(reg)

	routes := router.CommandRoutes(reg)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{}))
	routes = append(routes, router.TextRoute(reg, router.TextOptions{}))

	return tg.RunTelegram(ctx, tg.RunOptions{
		Config:      a.cfg,
		Registry:    reg,
		Middlewares: tg.DefaultMiddlewares(a.cfg, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, _ tg.Runtime) error {
			logger.Event(ctx, "app", slog.LevelInfo, "bot.started",
				slog.Int("count", a.handlers.cats.Len()),
			)
			return nil
		},
	})
}

func (a *App) registerCommands(reg *tg.Registry) {
	h := a.handlers
	reg.RegisterCommand("/start", commands.Command{
		Handler:     h.Start,
		Description: "Greet and explain how to play",
	})
	reg.RegisterCommand("/cat", commands.Command{
		Handler:     h.Categories,
		Description: "Pick a quiz category",
	})
	reg.RegisterCommand("/score", commands.Command{
		Handler:     h.Score,
		Description: "Show progress in the current round",
	})
	reg.RegisterCommand("/highscores", commands.Command{
		Handler:     h.Highscores,
		Description: "Top scores in this chat",
	})
	reg.RegisterCommand("/leaderboard", commands.Command{
		Handler:     h.Leaderboard,
		Description: "Your lifetime totals",
	})
	reg.RegisterCommand("/end", commands.Command{
		Handler:     h.End,
		Description: "End the current round early",
	})
	reg.RegisterCommand("/next", commands.Command{
		Handler:     h.Next,
		Description: "Skip the current question",
	})
}

func (a *App) registerCallbacks(reg *tg.Registry) {
	_ = reg.RegisterCallback(cbKeyCategory, a.handlers.SelectCategory)
	_ = reg.RegisterCallback(cbKeyAnswer, a.handlers.Answer)
}
