package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	httpSwagger "github.com/swaggo/http-swagger"

	"auth-service/config"
	_ "auth-service/docs"
	"auth-service/internal/handler"
	"auth-service/internal/notifier"
	"auth-service/internal/repository"
	"auth-service/internal/security"
	"auth-service/internal/service"
)

// @title Auth Service API
// @version 1.0
// @description Сервис аутентификации: регистрация, выдача и отзыв токенов

// @host localhost:8081

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN, &cfg.Retry)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	redisClient, err := config.SetupRedis(&cfg.RedisConfig, &cfg.Retry)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	publisher := notifier.NewUserEventPublisher(&cfg.Kafka)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Printf("Ошибка при закрытии Kafka writer: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	userRepo := repository.NewUserRepository(db)
	revocationCache := repository.NewRevocationCache(redisClient)

	jwtService := security.NewJWTService(&cfg.JWT)
	authService := service.NewAuthenticationService(userRepo, revocationCache, jwtService, publisher, &cfg.Admin)

	if err := authService.EnsureInitialAdmin(ctx); err != nil {
		log.Fatalf("Не удалось создать администратора: %v", err)
	}

	authHandler := handler.NewAuthenticationHandler(authService)
	healthHandler := handler.NewHealthHandler(db, redisClient)

	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/health", healthHandler.Health)

	setupAuthRoutes(router, authHandler, authService)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, authService *service.AuthenticationService) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(handler.Authenticate(authService))
			r.Get("/me", h.Me)
			r.Post("/logout", h.Logout)
		})
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
