package main

import (
	"context"
	"fmt"

	"bloglist/app/config"
	"bloglist/app/repositories"
	"bloglist/app/repositories/mongostore"
)

// store bundles the repositories of the configured backend with its close function.
type store struct {
	posts repositories.PostRepository
	users repositories.UserRepository
	close func(ctx context.Context) error
}

func openStore(ctx context.Context, cfg config.StorageConfig) (*store, error) {
	switch cfg.Driver {
	case config.DriverBadger:
		db, err := repositories.Open(cfg.Badger.Path)
		if err != nil {
			return nil, err
		}
		return &store{
			posts: repositories.NewBadgerPostRepository(db),
			users: repositories.NewBadgerUserRepository(db),
			close: func(context.Context) error { return db.Close() },
		}, nil
	case config.DriverMongo:
		ms, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		return &store{posts: ms.Posts(), users: ms.Users(), close: ms.Close}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
