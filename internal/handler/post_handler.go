package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"hanabi/internal/apperror"
	"hanabi/internal/models"
	"hanabi/internal/service"
)

// ProgramCreateResponse - контракт ответа POST /create-program
type ProgramCreateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type PostsResponse struct {
	Posts []models.Post `json:"posts"`
}

type MyPageResponse struct {
	Posts    []models.Post    `json:"posts"`
	Programs []models.Program `json:"programs"`
}

type FilePostResponse struct {
	Success bool         `json:"success"`
	Post    *models.Post `json:"post,omitempty"`
	Errors  interface{}  `json:"errors,omitempty"`
}

// CreateProgramPage - страница создания рендерится клиентом,
// сервер отдает только подтверждение маршрута
func (h *Handlers) CreateProgramPage(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, map[string]string{"page": "create-program"}, http.StatusOK)
}

func (h *Handlers) CreateProgram(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	var req service.CreateProgramPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteSuccess(w, ProgramCreateResponse{
			Success: false,
			Message: "Неверный формат запроса",
		}, http.StatusBadRequest)
		return
	}

	// creating the program and the post
	_, err := h.PostService.CreateProgramPost(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, apperror.ErrClientInput) {
			WriteSuccess(w, ProgramCreateResponse{
				Success: false,
				Message: "Отсутствуют данные программы",
			}, http.StatusBadRequest)
			return
		}

		log.Printf("Ошибка при сохранении программы: %v", err)
		WriteSuccess(w, ProgramCreateResponse{
			Success: false,
			Message: "Внутренняя ошибка сервера",
		}, http.StatusInternalServerError)
		return
	}

	WriteSuccess(w, ProgramCreateResponse{Success: true}, http.StatusCreated)
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	// setting the size limit from the config
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			WriteError(w, fmt.Sprintf("Файл слишком большой (макс. %d MB)",
				h.Cfg.MaxUploadSize/(1024*1024)), http.StatusBadRequest)
		} else {
			WriteError(w, "Ошибка при обработке файла", http.StatusBadRequest)
		}
		return
	}

	var req struct {
		Title       string `validate:"required"`
		Description string
		PostType    string `validate:"required,oneof=image video illustration"`
	}
	req.Title = r.FormValue("title")
	req.Description = r.FormValue("description")
	req.PostType = r.FormValue("post_type")

	if err := h.Validate.Struct(req); err != nil {
		// field-level errors, запись не создается
		fieldErrors := map[string]string{}
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fe := range validationErrors {
				fieldErrors[strings.ToLower(fe.Field())] = fe.Tag()
			}
		}
		WriteSuccess(w, FilePostResponse{Success: false, Errors: fieldErrors}, http.StatusBadRequest)
		return
	}

	// getting the file
	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		WriteSuccess(w, FilePostResponse{
			Success: false,
			Errors:  map[string]string{"file": "required"},
		}, http.StatusBadRequest)
		return
	}
	defer file.Close()

	// check formats
	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedContentType(models.PostType(req.PostType), contentType) {
		WriteSuccess(w, FilePostResponse{
			Success: false,
			Errors:  map[string]string{"file": "неподдерживаемый тип файла"},
		}, http.StatusBadRequest)
		return
	}

	serviceReq := service.CreateFilePostRequest{
		Title:       req.Title,
		Description: req.Description,
		PostType:    models.PostType(req.PostType),
		FileName:    fileHeader.Filename,
		File:        file,
		FileSize:    fileHeader.Size,
	}

	post, err := h.PostService.CreateFilePost(r.Context(), userID, serviceReq)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, FilePostResponse{Success: true, Post: post}, http.StatusCreated)
}

func allowedContentType(postType models.PostType, contentType string) bool {
	switch postType {
	case models.PostTypeVideo:
		return strings.HasPrefix(contentType, "video/")
	case models.PostTypeImage, models.PostTypeIllustration:
		return strings.HasPrefix(contentType, "image/")
	}
	return false
}

// GetPosts - публичный список, опционально суженный по типу
func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	filterType := models.PostType(r.URL.Query().Get("post_type"))

	posts, err := h.PostService.ListPosts(r.Context(), filterType)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}

	WriteSuccess(w, PostsResponse{Posts: posts}, http.StatusOK)
}

func (h *Handlers) MyPage(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	posts, err := h.PostService.ListOwnedPosts(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	programs, err := h.PostService.ListOwnedPrograms(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if posts == nil {
		posts = []models.Post{}
	}
	if programs == nil {
		programs = []models.Program{}
	}

	WriteSuccess(w, MyPageResponse{Posts: posts, Programs: programs}, http.StatusOK)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		WriteError(w, "Требуется аутентификация", http.StatusUnauthorized)
		return
	}

	postID := mux.Vars(r)["id"]
	if postID == "" {
		WriteError(w, "Неверный URL", http.StatusBadRequest)
		return
	}

	if err := h.PostService.DeletePost(r.Context(), userID, postID); err != nil {
		writeServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Пост удален"}, http.StatusOK)
}
