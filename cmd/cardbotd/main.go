package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"visiting-card-bot/constants"
	"visiting-card-bot/internal/common"
	"visiting-card-bot/internal/contextstore"
	"visiting-card-bot/internal/followup"
	"visiting-card-bot/internal/ledger"
	"visiting-card-bot/internal/llm/groq"
	"visiting-card-bot/internal/ocr"
	"visiting-card-bot/internal/pipeline"
	"visiting-card-bot/internal/transport/telegram"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("main.dotenv.skipped", "reason", err.Error())
	}

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("main.config.invalid", "error", err)
		os.Exit(1)
	}

	profile, ok := constants.ProfileByName(cfg.Pipeline.VerticalProfile)
	if !ok {
		logger.Error("main.config.invalid", "error", "unknown VERTICAL_PROFILE: "+cfg.Pipeline.VerticalProfile)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink, err := newLedger(cfg, logger)
	if err != nil {
		logger.Error("main.ledger.init_failed", "driver", cfg.Ledger.Driver, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := sink.Close(); err != nil {
			logger.Warn("main.ledger.close_failed", "error", err)
		}
	}()

	store, err := newStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("main.store.init_failed", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}

	groqClient := groq.NewClient(groq.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.ExtractTimeout,
	}, logger)

	recognizer := ocr.NewTesseractRecognizer(ocr.Config{
		Language: cfg.OCR.Language,
		PSM:      cfg.OCR.PSM,
	}, logger)

	processor := pipeline.NewProcessor(pipeline.Config{
		ExtractTimeout: cfg.LLM.ExtractTimeout,
		Profile:        profile,
	}, recognizer, groqClient, store, sink, logger)

	answerer := followup.NewAnswerer(followup.Config{
		Timeout:     cfg.LLM.FollowupTimeout,
		RegionFocus: cfg.LLM.RegionFocus,
	}, groqClient, logger)

	client := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.CallTimeout, logger)
	bot := telegram.NewBot(client, processor, answerer, store, cfg.Telegram.DownloadDir, cfg.Telegram.PollTimeout, logger)

	logger.Info("main.start",
		"ledger_driver", cfg.Ledger.Driver,
		"store_backend", cfg.Store.Backend,
		"vertical_profile", cfg.Pipeline.VerticalProfile,
		"model", cfg.LLM.Model,
	)
	if err := bot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("main.run.failed", "error", err)
		os.Exit(1)
	}
	logger.Info("main.stopped")
}

func newLedger(cfg *common.Config, logger *slog.Logger) (ledger.Appender, error) {
	switch cfg.Ledger.Driver {
	case "sqlite":
		return ledger.NewSQLite(cfg.Ledger.Path, logger)
	default:
		return ledger.NewXLSX(cfg.Ledger.Path, logger)
	}
}

func newStore(ctx context.Context, cfg *common.Config, logger *slog.Logger) (contextstore.Store, error) {
	if cfg.Store.Backend != "redis" {
		return contextstore.NewMemory(), nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Store.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	logger.Info("main.store.redis_connected", "addr", cfg.Store.RedisAddr)
	return contextstore.NewRedis(client), nil
}
