package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"warbler/backend/internal/config"
	"warbler/backend/internal/database"
	"warbler/backend/internal/seed"
	"warbler/backend/internal/server"
	"warbler/backend/internal/session"
	"warbler/backend/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// @title           Warbler API
// @version         1.0
// @description     Read-only API of the Warbler micro-blogging service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	defer func() { _ = log.L.Sync() }()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "warbler",
		Short:         "Warbler micro-blogging server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.Connect(config.AppConfig.DatabaseURL); err != nil {
				return err
			}
			log.L.Info("database migrated")
			return nil
		},
	})

	cmd.AddCommand(seedCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("warbler version %s (build: %s)\n", Version, BuildTime)
		},
	})

	return cmd
}

func seedCmd() *cobra.Command {
	var opts seed.Options

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with fake users and messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.Connect(config.AppConfig.DatabaseURL); err != nil {
				return err
			}
			_, err := seed.Seed(database.DB, opts)
			return err
		},
	}

	cmd.Flags().IntVar(&opts.Users, "users", 25, "Number of users")
	cmd.Flags().IntVar(&opts.MessagesPerUser, "messages", 10, "Messages per user")
	cmd.Flags().IntVar(&opts.FollowsPerUser, "follows", 5, "Follow attempts per user")
	cmd.Flags().IntVar(&opts.LikesPerUser, "likes", 10, "Like attempts per user")
	cmd.Flags().Int64Var(&opts.Seed, "seed", time.Now().UnixNano(), "Random seed")

	return cmd
}

func serve(ctx context.Context) error {
	cfg := config.AppConfig
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.Connect(cfg.DatabaseURL); err != nil {
		return err
	}

	store, err := session.NewStore(ctx, cfg)
	if err != nil {
		return err
	}

	router, err := server.NewRouter(store)
	if err != nil {
		return err
	}

	log.L.Info("swagger UI available", zap.String("url", fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.Port)))
	return server.Run(ctx, cfg, router)
}
