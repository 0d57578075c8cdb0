// Command admin runs operator tasks against the portfolio database.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-portfolio/internal/core/auth"
	"go-gin-portfolio/internal/core/config"
	"go-gin-portfolio/internal/core/database"
	"go-gin-portfolio/internal/core/logger"
	"go-gin-portfolio/internal/repo"
	"go-gin-portfolio/internal/service"
)

type env struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

func (e *env) auth() *service.AuthService {
	jwter := &auth.JWTer{Secret: []byte(e.cfg.JWT.Secret), Issuer: e.cfg.JWT.Issuer, TTL: e.cfg.JWT.TTL}
	return service.NewAuthService(repo.NewUserRepo(e.db), jwter, e.log, service.AuthOptions{
		BcryptCost:        e.cfg.Auth.BcryptCost,
		AllowRegistration: true,
	})
}

type buildLogger func(level string, json bool) (*zap.Logger, func())

func main() {
	_ = godotenv.Load()
	root, flush := newRoot(logger.New)
	err := root.Execute()
	flush()
	if err != nil {
		os.Exit(1)
	}
}

// newRoot returns the command tree and a func that flushes the logger it opens.
// The flush must run after Execute whether or not the command failed.
func newRoot(newLogger buildLogger) (*cobra.Command, func()) {
	var (
		configPath string
		e          env
		cleanup    = func() {}
	)
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Portfolio maintenance commands",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.log, cleanup = newLogger(cfg.Log.Level, cfg.Log.JSON)
			e.db, err = database.NewGorm(database.Opts{
				Driver:             cfg.DB.Driver,
				DSN:                cfg.DB.DSN,
				Username:           cfg.DB.Username,
				Password:           cfg.DB.Password,
				MaxOpenConns:       2,
				ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
				LogLevel:           cfg.DB.LogLevel,
				Log:                e.log,
			})
			if err != nil {
				return fmt.Errorf("open database %s: %w", database.MaskDSN(cfg.DB.DSN), err)
			}
			return repo.AutoMigrate(e.db)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $CONFIG_PATH or "+config.DefaultPath+")")

	root.AddCommand(seedAdminCmd(&e), resetPasswordCmd(&e), initPortfolioCmd(&e))
	return root, func() { cleanup() }
}

func seedAdminCmd(e *env) *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an admin account, or promote an existing one",
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, created, err := e.auth().EnsureAdmin(cmd.Context(), username, email, password)
			if err != nil {
				return err
			}
			if created {
				cmd.Printf("admin %q created (%s)\n", u.Username, u.Email)
			} else {
				cmd.Printf("admin %q already exists; role and status ensured, password unchanged\n", u.Username)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "admin", "admin username")
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func resetPasswordCmd(e *env) *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password for an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := username
			if id == "" {
				id = email
			}
			if id == "" {
				return errors.New("one of --username or --email is required")
			}
			u, err := e.auth().ResetPassword(cmd.Context(), id, password)
			if err != nil {
				return err
			}
			cmd.Printf("password reset for %q\n", u.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	cmd.MarkFlagsMutuallyExclusive("username", "email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func initPortfolioCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "init-portfolio",
		Short: "Seed the portfolio with the default template if it does not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := service.NewPortfolioService(repo.NewPortfolioRepo(e.db), e.log)
			_, created, err := svc.Initialize(cmd.Context())
			if err != nil {
				return err
			}
			if created {
				cmd.Println("portfolio initialized")
			} else {
				cmd.Println("portfolio already exists")
			}
			return nil
		},
	}
}
