package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"hanabi/internal/config"
	"hanabi/internal/database"
	"hanabi/internal/service"
)

type Handlers struct {
	AuthService service.AuthService
	PostService service.PostService
	DB          *database.DB
	Cfg         *config.Config
	Validate    *validator.Validate
}

func NewHandlers(service *service.Service, db *database.DB, config *config.Config) *Handlers {
	return &Handlers{
		AuthService: service.Auth,
		PostService: service.Post,
		DB:          db,
		Cfg:         config,
		Validate:    validator.New(),
	}
}

func HomeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"service": "hanabi",
		"status":  "running",
	})
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		if err := h.DB.HealthCheck(); err != nil {
			WriteError(w, "БД недоступна", http.StatusServiceUnavailable)
			return
		}
	}

	WriteSuccess(w, map[string]string{"status": "ok"}, http.StatusOK)
}
