package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/okamel/cvbank/config"
	"github.com/okamel/cvbank/internal/models"
	"github.com/okamel/cvbank/internal/repositories"
	"github.com/okamel/cvbank/internal/repositories/memory"
	mongorepo "github.com/okamel/cvbank/internal/repositories/mongo"
	pgrepo "github.com/okamel/cvbank/internal/repositories/postgres"
	"github.com/okamel/cvbank/internal/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	rootCmd := newRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "cvbank: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cvbank",
		Short:        "cvbank operations CLI",
		Long:         `Administrative helpers for the cvbank catalog: seed the admin account, generate password hashes, and purge records. The record store is selected by STORAGE_BACKEND, exactly as for the server.`,
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newSeedAdminCmd(),
		newHashPasswordCmd(),
		newPurgeCmd(),
	)
	return cmd
}

// openRepos wires the same backend selection the server uses. The memory
// backend is accepted but pointless here: it dies with the process.
func openRepos() (repositories.CVRepository, repositories.UserRepository, error) {
	backend := os.Getenv("STORAGE_BACKEND")
	switch backend {
	case "postgres":
		if err := config.InitPostgres(); err != nil {
			return nil, nil, err
		}
		return pgrepo.NewCVRepo(config.PostgresDB), pgrepo.NewUserRepo(config.PostgresDB), nil
	case "mongo":
		if err := config.InitMongo(); err != nil {
			return nil, nil, err
		}
		db := config.MongoDatabase()
		return mongorepo.NewCVRepo(db), mongorepo.NewUserRepo(db), nil
	case "memory", "":
		return memory.NewCVStore(), memory.NewUserStore(), nil
	default:
		return nil, nil, fmt.Errorf("unknown STORAGE_BACKEND %q", backend)
	}
}

func newSeedAdminCmd() *cobra.Command {
	var username string
	var password string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the admin account with a bcrypt-hashed password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return errors.New("--password is required")
			}
			_, users, err := openRepos()
			if err != nil {
				return err
			}

			if _, err := users.GetByUsername(cmd.Context(), username); err == nil {
				return fmt.Errorf("user %q already exists", username)
			} else if !errors.Is(err, utils.ErrNotFound) {
				return err
			}

			hash, err := utils.HashPassword(password)
			if err != nil {
				return err
			}
			u := &models.User{
				ID:        uuid.NewString(),
				Username:  username,
				Password:  hash,
				CreatedAt: time.Now().UTC(),
			}
			if err := users.Create(cmd.Context(), u); err != nil {
				return err
			}
			fmt.Printf("seeded admin %q (%s)\n", u.Username, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "admin", "Admin username")
	cmd.Flags().StringVar(&password, "password", "", "Admin password (hashed before storing)")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash suitable for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := utils.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Println(hash)
			return nil
		},
	}
}

func newPurgeCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every CV record from the store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to purge without --yes")
			}
			cvs, _, err := openRepos()
			if err != nil {
				return err
			}

			total := 0
			for {
				rows, err := cvs.ListAll(cmd.Context(), 500)
				if err != nil {
					return err
				}
				if len(rows) == 0 {
					break
				}
				for _, cv := range rows {
					if err := cvs.Delete(cmd.Context(), cv.ID); err != nil && !errors.Is(err, utils.ErrNotFound) {
						return err
					}
					total++
				}
			}
			fmt.Printf("purged %d cv records\n", total)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the purge")
	return cmd
}
