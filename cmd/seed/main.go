package main

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

var version = "dev"

type CLI struct {
	Migrate bool `help:"Apply migrations before seeding."`
	Version kong.VersionFlag
	User    UserCmd  `cmd:"" help:"Register a user with their default organisation"`
	Token   TokenCmd `cmd:"" help:"Print an access token for an existing user"`
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name("seed"),
		kong.Description("Seed the organisation service database."),
		kong.Vars{"version": version},
	}
}

func main() {
	_ = godotenv.Load()

	var cli CLI
	ctx := context.Background()
	cmd := kong.Parse(&cli, append(options(), kong.BindTo(ctx, (*context.Context)(nil)))...)
	err := cmd.Run(&Globals{Migrate: cli.Migrate})
	cmd.FatalIfErrorf(err)
}
