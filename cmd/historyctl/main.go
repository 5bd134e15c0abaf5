package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/prscribe/prscribe/internal/config"
	"github.com/prscribe/prscribe/internal/history"
	histmigrate "github.com/prscribe/prscribe/internal/history/migrate"
)

var rootCmd = &cobra.Command{
	Use:   "historyctl",
	Short: "Generation history schema management CLI",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize migration tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithDatabase(func(database *history.Database) error {
			manager, err := newManager(database)
			if err != nil {
				return err
			}
			return manager.Init(cmd.Context())
		})
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or rollback schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithDatabase(func(database *history.Database) error {
			manager, err := newManager(database)
			if err != nil {
				return err
			}
			return manager.MigrateUp(cmd.Context())
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		to, _ := cmd.Flags().GetString("to")

		return runWithDatabase(func(database *history.Database) error {
			manager, err := newManager(database)
			if err != nil {
				return err
			}
			if to != "" {
				return manager.MigrateDownTo(cmd.Context(), to)
			}
			return manager.MigrateDownSteps(cmd.Context(), steps)
		})
	},
}

var statusCmd = &cobra.Command{
	Use:           "status",
	Short:         "Show applied and pending migrations",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithDatabase(func(database *history.Database) error {
			manager, err := newManager(database)
			if err != nil {
				return err
			}
			status, err := manager.Status(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range status {
				state := "pending"
				if m.IsApplied() {
					state = "applied"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s_%s\t%s\n", m.Name, m.Comment, state)
			}
			return nil
		})
	},
}

var verifyCmd = &cobra.Command{
	Use:           "verify",
	Short:         "Ensure the history database is on the latest schema version",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithDatabase(func(database *history.Database) error {
			return histmigrate.EnsureCurrent(cmd.Context(), database.Bun(), migrationsDir(), false)
		})
	},
}

func main() {
	config.Init(rootCmd)

	rootCmd.PersistentFlags().String("dsn", "", "PostgreSQL DSN (overrides POSTGRES_URL)")
	rootCmd.PersistentFlags().String("migrations", "internal/history/migrations", "Migrations directory")
	_ = viper.BindPFlag("postgres_url", rootCmd.PersistentFlags().Lookup("dsn"))
	_ = viper.BindPFlag("history_migrations_dir", rootCmd.PersistentFlags().Lookup("migrations"))

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(initCmd, migrateCmd, statusCmd, verifyCmd)
	_ = migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to roll back (0 = all)")
	_ = migrateDownCmd.Flags().String("to", "", "Roll back to the specified migration (inclusive)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "historyctl: %v\n", err)
		os.Exit(1)
	}
}

func runWithDatabase(fn func(*history.Database) error) error {
	dsn := viper.GetString("postgres_url")
	if dsn == "" {
		dsn = config.PostgresURL()
	}
	if dsn == "" {
		return errors.New("postgres DSN must be provided via flag or environment")
	}
	database, err := history.NewDatabase(history.Config{DSN: dsn})
	if err != nil {
		return err
	}
	defer database.Close()
	return fn(database)
}

func newManager(database *history.Database) (*histmigrate.Manager, error) {
	return histmigrate.NewManager(database.Bun(), migrationsDir())
}

func migrationsDir() string {
	dir := viper.GetString("history_migrations_dir")
	if dir == "" {
		dir = "internal/history/migrations"
	}
	return dir
}
