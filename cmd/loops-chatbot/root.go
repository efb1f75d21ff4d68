package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/laraabey/Loops-integrated-chatbot/config"
	"github.com/laraabey/Loops-integrated-chatbot/internal/app"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config/config.yml"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "loops-chatbot",
		Short:         "Loops Integrated website with a bilingual chat assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newChatCmd(), newContactsCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var cfgPath, envFile string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page and the chat and contact API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cfgPath, envFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, cfg)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", defaultConfigPath, "path to the YAML config")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	return cmd
}

// loadConfig loads envFile when it exists, reads the config and sets up
// logging.
func loadConfig(cfgPath, envFile string) (*config.Config, error) {
	if err := loadEnv(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}
	app.SetupLogger(cfg.Log, nil)
	log.Debug().Str("config", cfgPath).Msg("config loaded")
	return cfg, nil
}

func loadEnv(envFile string) error {
	if envFile == "" {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
