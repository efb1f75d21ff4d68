package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/laraabey/Loops-integrated-chatbot/config"
	"github.com/laraabey/Loops-integrated-chatbot/internal/handler"
	in_memory "github.com/laraabey/Loops-integrated-chatbot/internal/storage/in-memory"
	key_value "github.com/laraabey/Loops-integrated-chatbot/internal/storage/key-value"
	"github.com/laraabey/Loops-integrated-chatbot/internal/usecase"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Run serves the site until ctx is cancelled, then shuts the server down.
func Run(ctx context.Context, cfg *config.Config) error {
	baseURL, err := url.JoinPath(cfg.OpenAI.OpenAIBaseURL, "/v1")
	if err != nil {
		return err
	}
	cfg.OpenAI.OpenAIBaseURL = baseURL

	openAIUsecase := usecase.NewOpenAIUsecase(cfg.OpenAI, cfg.Chat.PromptTokenLimit)

	chatUsecase := usecase.NewChatUsecase(
		usecase.ChatUsecaseDeps{
			Gateway: openAIUsecase,
		},
		cfg.Chat,
		usecase.LoopsKnowledge,
	)

	contactDeps := usecase.ContactUsecaseDeps{
		Log: log.Logger.With().Str("component", "contact").Logger(),
	}
	storage, closeStorage, err := NewContactStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStorage()
	contactDeps.Storage = storage
	if cfg.Telegram.Enabled() {
		bot, err := api.NewBotAPI(cfg.Telegram.TelegramAPIToken)
		if err != nil {
			return fmt.Errorf("failed to create new bot: %w", err)
		}
		log.Info().Str("bot", bot.Self.UserName).Msg("contact notifications enabled")
		contactDeps.Notifier = usecase.NewTelegramNotifier(cfg.Telegram, bot)
	}
	contactUsecase := usecase.NewContactUsecase(contactDeps)

	h, err := handler.NewServer(
		handler.ServerDeps{
			Chat:           chatUsecase,
			Contact:        contactUsecase,
			Knowledge:      usecase.LoopsKnowledge,
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create http handler: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           h,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", cfg.HTTP.Address).Str("model", cfg.OpenAI.OpenAIModel).Msg("site listening")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// NewContactStorage picks the contact store named by cfg. The log backend has
// no store and returns nil.
func NewContactStorage(ctx context.Context, cfg *config.Config) (usecase.ContactStorage, func(), error) {
	switch cfg.Contact.Storage {
	case config.ContactStorageMemory:
		log.Info().Msg("contact submissions kept in memory")
		return in_memory.NewContactStorage(), func() {}, nil
	case config.ContactStorageRedis:
		rdb, err := NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("endpoint", cfg.Redis.Endpoint).Msg("contact submissions stored in redis")
		return key_value.NewContactStorage(rdb), func() { _ = rdb.Close() }, nil
	default:
		log.Info().Msg("contact submissions are logged only")
		return nil, func() {}, nil
	}
}

func NewRedisClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	rdb := redis.NewClient(
		&redis.Options{
			Addr:     cfg.Endpoint,
			Password: cfg.Password,
			DB:       cfg.DB,
		},
	)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis %s: %w", cfg.Endpoint, err)
	}
	return rdb, nil
}
