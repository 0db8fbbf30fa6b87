// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/accounts/cmd/app/commands"
	"github.com/allisson/accounts/internal/app"
	"github.com/allisson/accounts/internal/config"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "app",
		Usage:   "Accounts API application",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					return commands.RunMigrations(
						container.Logger(),
						cfg.DBDriver,
						cfg.DBConnectionString,
					)
				},
			},
			{
				Name:  "create-user",
				Usage: "Create a new user account",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "username",
						Aliases:  []string{"u"},
						Required: true,
						Usage:    "Username for the new account",
					},
					&cli.StringFlag{
						Name:     "email",
						Aliases:  []string{"e"},
						Required: true,
						Usage:    "Email address for the new account",
					},
					&cli.StringFlag{
						Name:  "password",
						Usage: "Password for the new account (omit to be prompted)",
					},
					&cli.StringFlag{
						Name:  "full-name",
						Usage: "Full name for the new account",
					},
					&cli.StringFlag{
						Name:    "role",
						Aliases: []string{"r"},
						Value:   "user",
						Usage:   "Role for the new account: 'user' or 'admin'",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "text",
						Usage:   "Output format: 'text' or 'json'",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					cfg := config.Load()
					container := app.NewContainer(cfg)
					logger := container.Logger()

					userUseCase, err := container.UserUseCase()
					if err != nil {
						return fmt.Errorf("failed to initialize user use case: %w", err)
					}
					defer func() {
						if err := container.Shutdown(context.Background()); err != nil {
							logger.Error("failed to shutdown container", slog.Any("error", err))
						}
					}()

					return commands.RunCreateUser(
						ctx,
						userUseCase,
						logger,
						commands.CreateUserOptions{
							Username: cmd.String("username"),
							Email:    cmd.String("email"),
							Password: cmd.String("password"),
							FullName: cmd.String("full-name"),
							Role:     cmd.String("role"),
							Format:   cmd.String("format"),
						},
						commands.DefaultIO(),
					)
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
