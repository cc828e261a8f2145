package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// ProgramResponse - публичный ответ GET /programs/{id}, payload отдается
// байт-в-байт как был сохранен
type ProgramResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	ProgramData string `json:"program_data"`
	User        string `json:"user"`
	CreatedAt   string `json:"created_at"`
}

func (h *Handlers) GetProgram(w http.ResponseWriter, r *http.Request) {
	programID := mux.Vars(r)["id"]
	if programID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	program, err := h.PostService.GetProgram(r.Context(), programID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response := ProgramResponse{
		ID:          program.ProgramID,
		Title:       program.Title,
		ProgramData: program.ProgramData,
		User:        program.Username,
		CreatedAt:   program.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	WriteSuccess(w, response, http.StatusOK)
}
