// Command migrate applies or inspects the embedded schema migrations.
//
//	migrate            # up
//	migrate status
//	migrate down
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"career-coach/internal/shared/config"
	"career-coach/internal/shared/storage/db"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "migrate [" + strings.Join(db.MigrationCommands, "|") + "] [args]",
		Short:         "Run career coach schema migrations",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := "up"
			if len(args) > 0 {
				command, args = args[0], args[1:]
			}
			return run(cmd.Context(), command, args)
		},
	}
}

func run(ctx context.Context, command string, args []string) error {
	cfg := config.Load()
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultCLIOptions()))
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer sqlDB.Close()
	return db.Migrate(ctx, sqlDB, command, args...)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}
