package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bloglist/app/auth"
	"bloglist/app/config"
	"bloglist/app/dbcmd"
	"bloglist/app/routes"
	"bloglist/app/services"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const cliVersion = "1.0.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "bloglist",
		Usage:   "blog list HTTP backend",
		Version: cliVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{"BLOGLIST_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP server",
				Action: serve,
			},
			{
				Name:  "user",
				Usage: "manage users",
				Subcommands: []*cli.Command{
					{
						Name:  "create",
						Usage: "register a user",
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "username", Required: true},
							&cli.StringFlag{Name: "name"},
							&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"BLOGLIST_PASSWORD"}},
						},
						Action: createUser,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "print the post statistics as JSON",
				Action: printStats,
			},
			{
				Name:  "db",
				Usage: "maintain the embedded Badger database",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Aliases: []string{"f"}, Usage: "do not ask for confirmation"},
				},
				Subcommands: []*cli.Command{
					{Name: "init", Usage: "initialize a new empty database", Action: dbAction(func(c dbcmd.Commands, _ *cli.Context) error { return c.Init() })},
					{Name: "clean", Usage: "remove the database", Action: dbAction(func(c dbcmd.Commands, _ *cli.Context) error { return c.Clean() })},
					{Name: "backup", Usage: "create a backup of the database", Action: dbAction(func(c dbcmd.Commands, _ *cli.Context) error {
						_, err := c.Backup()
						return err
					})},
					{Name: "restore", Usage: "restore the database from a backup file", ArgsUsage: "<file>", Action: dbAction(func(c dbcmd.Commands, ctx *cli.Context) error {
						if ctx.NArg() < 1 {
							return errors.New("backup file path required for restore")
						}
						return c.Restore(ctx.Args().First())
					})},
				},
			},
		},
	}
}

func loadConfig(c *cli.Context) (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return cfg, nil, err
	}
	log, err := cfg.NewLogger()
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

func serve(c *cli.Context) error {
	cfg, log, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.close(context.Background()); err != nil {
			log.WithError(err).Warn("failed to close store")
		}
	}()

	router := routes.NewRouter(st.posts, st.users, routes.Options{
		Secret:          cfg.Auth.Secret,
		TokenTTL:        cfg.Auth.TokenTTL,
		OwnerOnlyUpdate: cfg.Posts.OwnerOnlyUpdate,
		BcryptCost:      cfg.Auth.BcryptCost,
	}, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(logrus.Fields{"addr": cfg.Server.Addr, "storage": cfg.Storage.Driver}).Info("server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func createUser(c *cli.Context) error {
	cfg, _, err := loadConfig(c)
	if err != nil {
		return err
	}
	st, err := openStore(c.Context, cfg.Storage)
	if err != nil {
		return err
	}
	defer st.close(context.Background())

	svc := services.NewUserService(st.users, st.posts, auth.Hasher{Cost: cfg.Auth.BcryptCost})
	user, err := svc.Create(c.Context, services.CreateUserRequest{
		Username: c.String("username"),
		Name:     c.String("name"),
		Password: c.String("password"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Created user %s (%s)\n", user.Username, user.ID.Hex())
	return nil
}

func printStats(c *cli.Context) error {
	cfg, _, err := loadConfig(c)
	if err != nil {
		return err
	}
	st, err := openStore(c.Context, cfg.Storage)
	if err != nil {
		return err
	}
	defer st.close(context.Background())

	summary, err := services.NewStatsService(st.posts).Summary(c.Context)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

func dbAction(run func(dbcmd.Commands, *cli.Context) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, _, err := loadConfig(c)
		if err != nil {
			return err
		}
		err = run(dbcmd.Commands{
			Path:      cfg.Storage.Badger.Path,
			BackupDir: cfg.Storage.Badger.BackupDir,
			Force:     c.Bool("force"),
			In:        os.Stdin,
			Out:       c.App.Writer,
		}, c)
		if errors.Is(err, dbcmd.ErrCancelled) {
			fmt.Fprintln(c.App.Writer, "Operation cancelled")
			return nil
		}
		return err
	}
}
