// Package routes wires repositories, services and controllers into the HTTP router.
package routes

import (
	"net/http"
	"time"

	"bloglist/app/auth"
	"bloglist/app/controllers"
	"bloglist/app/middleware"
	"bloglist/app/repositories"
	"bloglist/app/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Options are the settings the router needs beyond the stores.
type Options struct {
	Secret          string
	TokenTTL        time.Duration
	OwnerOnlyUpdate bool
	// BcryptCost of 0 uses the bcrypt default.
	BcryptCost int
}

// NewRouter builds the full application router on top of the given repositories.
func NewRouter(posts repositories.PostRepository, users repositories.UserRepository, opts Options, log logrus.FieldLogger) *mux.Router {
	tokens := auth.NewTokens(opts.Secret, opts.TokenTTL)
	hasher := auth.Hasher{Cost: opts.BcryptCost}

	postController := controllers.NewPostController(services.NewPostService(posts, users, tokens,
		services.WithOwnerOnlyUpdate(opts.OwnerOnlyUpdate),
		services.WithLogger(log),
	), log)
	userController := controllers.NewUserController(services.NewUserService(users, posts, hasher), log)
	loginController := controllers.NewLoginController(services.NewLoginService(users, hasher, tokens), log)
	statsController := controllers.NewStatsController(services.NewStatsService(posts), log)
	systemController := controllers.NewSystemController(log)

	router := mux.NewRouter()

	// Apply global middleware.
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer(log))

	router.NotFoundHandler = middleware.RequestID(http.HandlerFunc(systemController.NotFound))
	router.HandleFunc("/healthz", systemController.Health).Methods("GET")

	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.ContentTypeJSON)
	apiRouter.Use(middleware.TokenExtractor)

	apiPosts := apiRouter.PathPrefix("/posts").Subrouter()
	apiPosts.HandleFunc("", postController.Index).Methods("GET")
	apiPosts.HandleFunc("", postController.Create).Methods("POST")
	apiPosts.HandleFunc("/{id}", postController.Show).Methods("GET")
	apiPosts.HandleFunc("/{id}", postController.Update).Methods("PUT")
	apiPosts.HandleFunc("/{id}", postController.Delete).Methods("DELETE")
	apiPosts.HandleFunc("/{id}/comments", postController.AddComments).Methods("POST")

	apiRouter.HandleFunc("/users", userController.Index).Methods("GET")
	apiRouter.HandleFunc("/users", userController.Create).Methods("POST")
	apiRouter.HandleFunc("/login", loginController.Login).Methods("POST")
	apiRouter.HandleFunc("/stats", statsController.Show).Methods("GET")

	return router
}
