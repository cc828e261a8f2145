package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"hanabi/cmd/app"
	"hanabi/internal/config"
	handlers "hanabi/internal/handler"
	"hanabi/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, _, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(services, db, cfg)

	r := mux.NewRouter()

	// setting up routes
	r.HandleFunc("/", handlers.HomeHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", handler.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/register", handler.Register).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", handler.Login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/refresh-token", handler.RefreshToken).Methods(http.MethodPost)

	r.HandleFunc("/create-program", handler.CreateProgramPage).Methods(http.MethodGet)
	r.HandleFunc("/create-program", handler.CreateProgram).Methods(http.MethodPost)
	r.HandleFunc("/create-post", handler.CreatePost).Methods(http.MethodPost)

	r.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	// удаление только по POST, GET по этому пути ничего не удаляет
	r.HandleFunc("/posts/{id}/delete", handler.DeletePost).Methods(http.MethodPost)
	r.HandleFunc("/mypage", handler.MyPage).Methods(http.MethodGet)

	r.HandleFunc("/programs/{id}", handler.GetProgram).Methods(http.MethodGet)

	handlerChain := middleware.Chain(
		r,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
