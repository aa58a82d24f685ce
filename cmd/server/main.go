package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moments/backend/internal/config"
	"moments/backend/internal/database"
	"moments/backend/internal/handler"
	"moments/backend/internal/redis"
	"moments/backend/internal/repository"
	"moments/backend/internal/service"
	"moments/backend/internal/session"
	transport "moments/backend/internal/transport/http"
	"moments/backend/internal/transport/http/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to create redis client: %v", err)
	}
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx); err != nil {
		cancel()
		log.Fatalf("failed to connect to redis: %v", err)
	}
	cancel()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewRefreshTokenRepository(db)
	friendshipRepo := repository.NewFriendshipRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tagRepo := repository.NewTagRepository(db)
	historyRepo := repository.NewSearchHistoryRepository(db)

	// Services
	denylist := session.NewDenylist(redisClient.Client)
	authService := service.NewAuthService(cfg, userRepo, tokenRepo, denylist)
	userService := service.NewUserService(userRepo)
	resolver := service.NewVisibilityResolver(friendshipRepo, followRepo)
	postService := service.NewPostService(db, postRepo, commentRepo, userRepo, resolver)
	friendshipService := service.NewFriendshipService(friendshipRepo, userRepo)
	followService := service.NewFollowService(followRepo, userRepo)
	searchService := service.NewSearchService(postService, resolver, userRepo, tagRepo, historyRepo)
	mediaService := service.NewMediaService(cfg)

	// HTTP layer
	authenticator := middleware.NewAuthenticator(authService, denylist)
	handlers := transport.Handlers{
		Auth:       handler.NewAuthHandler(userService, authService),
		User:       handler.NewUserHandler(userService, authService, mediaService),
		Post:       handler.NewPostHandler(postService),
		Publish:    handler.NewPublishHandler(postService, searchService, mediaService),
		Friendship: handler.NewFriendshipHandler(friendshipService),
		Follow:     handler.NewFollowHandler(followService),
		Search:     handler.NewSearchHandler(searchService),
		Media:      handler.NewMediaHandler(mediaService),
		Admin:      handler.NewAdminHandler(userService, postService),
	}
	router := transport.NewRouter(handlers, authenticator, cfg.MediaRoot)
	server := transport.NewServer(cfg.ServerPort, router)

	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[Server] shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[Server] forced shutdown: %v", err)
	}
}
