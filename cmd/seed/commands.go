package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/orgauth-service/config"
	"github.com/oksasatya/orgauth-service/internal/application"
	"github.com/oksasatya/orgauth-service/internal/domain/entity"
	pginfra "github.com/oksasatya/orgauth-service/internal/infrastructure/postgres"
	"github.com/oksasatya/orgauth-service/pkg/apperror"
	"github.com/oksasatya/orgauth-service/pkg/helpers"
)

type Globals struct {
	Migrate bool
}

type UserCmd struct {
	FirstName   string `help:"First name." default:"Demo"`
	LastName    string `help:"Last name." default:"User"`
	Email       string `help:"Email address." default:"demo@example.com"`
	Password    string `help:"Password (min 8 characters)." default:"password123"`
	Phone       string `help:"Optional phone number."`
	Description string `help:"Description of the default organisation."`
}

func (c *UserCmd) Run(ctx context.Context, g *Globals) error {
	return withAuth(ctx, g, func(cfg *config.Config, auth *application.AuthService) error {
		sess, err := auth.Register(ctx, entity.Registration{
			FirstName:   c.FirstName,
			LastName:    c.LastName,
			Email:       c.Email,
			Password:    c.Password,
			Phone:       c.Phone,
			Description: c.Description,
		})
		if apperror.IsKind(err, apperror.KindConflict) {
			fmt.Printf("user %s already exists, nothing to do\n", c.Email)
			return nil
		}
		if err != nil {
			return err
		}
		printSeeded(os.Stdout, c.Email, sess)
		return nil
	})
}

// printSeeded reports the new account. The password is never echoed.
func printSeeded(w io.Writer, email string, sess *application.Session) {
	fmt.Fprintf(w, "seeded user: email=%s\n", email)
	if sess.Organisation != nil {
		fmt.Fprintf(w, "organisation: id=%s name=%q\n", sess.Organisation.ID, sess.Organisation.Name)
	}
	fmt.Fprintf(w, "token: %s\n", sess.AccessToken)
}

type TokenCmd struct {
	Email    string `arg:"" help:"Email of the user."`
	Password string `arg:"" help:"Password of the user."`
}

func (c *TokenCmd) Run(ctx context.Context, g *Globals) error {
	return withAuth(ctx, g, func(_ *config.Config, auth *application.AuthService) error {
		sess, err := auth.Login(ctx, c.Email, c.Password)
		if err != nil {
			return err
		}
		fmt.Println(sess.AccessToken)
		return nil
	})
}

// withAuth connects to Postgres and hands fn an AuthService without the
// optional e-mail and search integrations.
func withAuth(ctx context.Context, g *Globals, fn func(*config.Config, *application.AuthService) error) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	logger.SetLevel(logrus.WarnLevel)

	if g.Migrate {
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	bunDB := pginfra.NewBunDB(pool)
	defer func() { _ = bunDB.Close() }()

	jwt := helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	auth := application.NewAuthService(pginfra.NewStore(bunDB), jwt, nil, nil, logger, cfg.AppName, cfg.PhoneDefaultRegion)

	err = fn(cfg, auth)
	if ae, ok := apperror.As(err); ok && ae.Operational() {
		return errors.New(ae.Message)
	}
	return err
}
