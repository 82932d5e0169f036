// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/mail"
	pgstore "github.com/taibuivan/yamdb/internal/platform/postgres"
	redisstore "github.com/taibuivan/yamdb/internal/platform/redis"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/users/auth"
)

// provisionTimeout bounds the whole create-superuser run.
const provisionTimeout = 30 * time.Second

// newCreateSuperuserCmd builds "create-superuser".
func newCreateSuperuserCmd() *cobra.Command {
	var input auth.SignupInput

	cmd := &cobra.Command{
		Use:   "create-superuser",
		Short: "Create an administrator account",
		Long: `Create an account with the admin role and the superuser flag, then
print its first confirmation code. Exchange it at POST /api/v1/auth/token.

Example:
  yamdbctl create-superuser --username root --email root@yamdb.ru`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			context, cancel := context.WithTimeout(cmd.Context(), provisionTimeout)
			defer cancel()

			tooling, err := loadTooling()
			if err != nil {
				return err
			}

			service, closeAll, err := newAuthService(context, tooling)
			if err != nil {
				return err
			}
			defer closeAll()

			user, code, err := service.CreateSuperuser(context, input)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "superuser %s created (id %s)\nconfirmation code: %s\n", user.Username, user.ID, code)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Username, "username", "", "Username of the new superuser")
	cmd.Flags().StringVar(&input.Email, "email", "", "Email of the new superuser")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// newAuthService wires the auth service without a token provider; the
// command only creates accounts and codes.
func newAuthService(context context.Context, tooling *config.Tooling) (*auth.Service, func(), error) {
	logger := newLogger()

	codes, err := sec.NewConfirmationCodes(tooling.ConfirmationSecret)
	if err != nil {
		return nil, nil, err
	}

	pool, err := pgstore.NewPool(context, tooling.DatabaseURL, pgstore.PoolOptions{MaxConns: 2}, logger)
	if err != nil {
		return nil, nil, err
	}
	closeAll := pool.Close

	var mailer mail.Sender = mail.NewLogSender(logger)
	if tooling.MailTransport == config.MailTransportRedis {
		client, err := redisstore.NewClient(context, tooling.RedisURL, logger)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		mailer = mail.NewRedisOutbox(client, tooling.MailOutboxKey)
		closeAll = func() {
			_ = client.Close()
			pool.Close()
		}
	}

	service := auth.NewService(auth.NewUserRepository(pool), codes, nil, mailer, auth.Options{MailFrom: tooling.MailFrom})
	return service, closeAll, nil
}
