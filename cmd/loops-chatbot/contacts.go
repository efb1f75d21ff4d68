package main

import (
	"fmt"
	"io"
	"time"

	"github.com/laraabey/Loops-integrated-chatbot/config"
	"github.com/laraabey/Loops-integrated-chatbot/internal/app"
	"github.com/laraabey/Loops-integrated-chatbot/internal/model"
	key_value "github.com/laraabey/Loops-integrated-chatbot/internal/storage/key-value"
	"github.com/spf13/cobra"
)

func newContactsCmd() *cobra.Command {
	var (
		cfgPath, envFile string
		limit            int64
	)
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List contact submissions stored in redis, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive, got %d", limit)
			}
			if err := loadEnv(envFile); err != nil {
				return err
			}
			cfg, err := config.LoadStorageConfig(cfgPath)
			if err != nil {
				return err
			}
			app.SetupLogger(cfg.Log, cmd.ErrOrStderr())
			ctx := commandContext(cmd)
			rdb, err := app.NewRedisClient(ctx, cfg.Redis)
			if err != nil {
				return err
			}
			defer rdb.Close()

			records, err := key_value.NewContactStorage(rdb).ListContacts(ctx, limit)
			if err != nil {
				return err
			}
			printContacts(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", defaultConfigPath, "path to the YAML config")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	cmd.Flags().Int64VarP(&limit, "limit", "n", 20, "number of submissions to show")
	return cmd
}

func printContacts(out io.Writer, records []model.ContactRecord) {
	if len(records) == 0 {
		fmt.Fprintln(out, "no contact submissions")
		return
	}
	for _, record := range records {
		fmt.Fprintf(
			out, "%s  %s <%s>\n  %s\n",
			record.SubmittedAt.Local().Format(time.DateTime),
			record.Submission.Name,
			record.Submission.Email,
			record.Submission.Message,
		)
	}
}
