package main

import (
	"fmt"
	"os"
	"time"

	"github.com/VictorAraujo38/akkadian-test/cmd/bootstrap"
	"github.com/VictorAraujo38/akkadian-test/config"
	"github.com/VictorAraujo38/akkadian-test/internal/domain/entity"
	"github.com/VictorAraujo38/akkadian-test/internal/infrastructure/migrations"
	"github.com/VictorAraujo38/akkadian-test/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medsched",
		Short: "Medical appointment scheduling API",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduling API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.New()
			if err != nil {
				logrus.Fatalf("Failed to initialize application: %v", err)
			}
			app.Run()
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(migrations.Up), string(migrations.Down)},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, err := migrations.ParseDirection(args[0])
			if err != nil {
				return err
			}
			return bootstrap.Migrate(direction)
		},
	}
}

// tokenCmd issues a bearer token for local testing. Identity is owned by an
// external provider in production.
func tokenCmd() *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
			roleID, err := roleIDByName(role)
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			token, err := jwt.NewJWTService(cfg.JWT).GenerateToken(id, roleID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id (uuid)")
	cmd.Flags().StringVar(&role, "role", entity.RolePatient, "admin, doctor or patient")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func roleIDByName(name string) (int, error) {
	for _, id := range []int{entity.RoleIDAdmin, entity.RoleIDDoctor, entity.RoleIDPatient} {
		if entity.RoleNameByID(id) == name {
			return id, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", name)
}
