package service

import (
	"context"
	"fmt"
	"io"
	"log"

	"hanabi/internal/apperror"
	"hanabi/internal/config"
	"hanabi/internal/models"
	"hanabi/internal/repository"
	"hanabi/internal/storage"
)

// заголовок по умолчанию для программы без названия
const DefaultProgramTitle = "untitled fireworks"

type CreateProgramPostRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ProgramData string `json:"program_data"`
}

type CreateFilePostRequest struct {
	Title       string
	Description string
	PostType    models.PostType
	FileName    string
	File        io.Reader
	FileSize    int64
}

type PostService interface {
	CreateProgramPost(ctx context.Context, userID string, req CreateProgramPostRequest) (*models.Post, error)
	CreateFilePost(ctx context.Context, userID string, req CreateFilePostRequest) (*models.Post, error)
	ListPosts(ctx context.Context, filterType models.PostType) ([]models.Post, error)
	ListOwnedPosts(ctx context.Context, userID string) ([]models.Post, error)
	ListOwnedPrograms(ctx context.Context, userID string) ([]models.Program, error)
	DeletePost(ctx context.Context, userID, postID string) error
	GetProgram(ctx context.Context, programID string) (*repository.ProgramWithOwner, error)
}

type postService struct {
	postRepo    repository.PostRepository
	programRepo repository.ProgramRepository
	storage     storage.Storage
	cfg         *config.Config
}

func NewPostService(postRepo repository.PostRepository, programRepo repository.ProgramRepository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo:    postRepo,
		programRepo: programRepo,
		storage:     storage,
		cfg:         cfg,
	}
}

// CreateProgramPost создает программу и пост на нее одной парой:
// либо обе записи, либо ни одной
func (p *postService) CreateProgramPost(ctx context.Context, userID string, req CreateProgramPostRequest) (*models.Post, error) {
	if req.ProgramData == "" {
		return nil, apperror.ClientInput("отсутствуют данные программы")
	}

	title := req.Title
	if title == "" {
		title = DefaultProgramTitle
	}

	program := &models.Program{
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		ProgramData: req.ProgramData,
	}

	post := &models.Post{
		UserID:      userID,
		Title:       title,
		Description: req.Description,
		PostType:    models.PostTypeProgram,
	}

	err := p.postRepo.CreateWithProgram(ctx, post, program)
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) CreateFilePost(ctx context.Context, userID string, req CreateFilePostRequest) (*models.Post, error) {
	if !req.PostType.IsFileBacked() {
		return nil, apperror.ClientInput("недопустимый тип поста")
	}

	if req.Title == "" {
		return nil, apperror.ClientInput("отсутствует заголовок")
	}

	if req.File == nil || req.FileSize <= 0 {
		return nil, apperror.ClientInput("отсутствует файл")
	}

	objectName, fileURL, err := p.storage.UploadFile(ctx, req.FileName, req.File, req.FileSize)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки файла в MinIO: %w", err)
	}

	post := &models.Post{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		PostType:    req.PostType,
		FileURL:     &fileURL,
	}

	err = p.postRepo.Create(ctx, post)
	if err != nil {
		// компенсирующее удаление: запись не создана, файл не должен остаться
		p.storage.DeleteFile(ctx, objectName)
		return nil, fmt.Errorf("ошибка сохранения поста в БД: %w", err)
	}

	return post, nil
}

func (p *postService) ListPosts(ctx context.Context, filterType models.PostType) ([]models.Post, error) {
	if filterType != "" && !filterType.Valid() {
		return nil, apperror.ClientInput("недопустимый тип поста")
	}

	return p.postRepo.GetAll(ctx, filterType)
}

func (p *postService) ListOwnedPosts(ctx context.Context, userID string) ([]models.Post, error) {
	return p.postRepo.GetByUserID(ctx, userID)
}

func (p *postService) ListOwnedPrograms(ctx context.Context, userID string) ([]models.Program, error) {
	return p.programRepo.GetByUserID(ctx, userID)
}

func (p *postService) DeletePost(ctx context.Context, userID, postID string) error {
	fileURL, err := p.postRepo.DeleteOwned(ctx, userID, postID)
	if err != nil {
		return err
	}

	// записи уже удалены, файл чистим по возможности
	if fileURL != nil {
		objectName := p.storage.ObjectNameFromURL(*fileURL)
		if objectName != "" {
			if err := p.storage.DeleteFile(ctx, objectName); err != nil {
				log.Printf("Предупреждение: не удалось удалить файл из MinIO: %v", err)
			}
		}
	}

	return nil
}

func (p *postService) GetProgram(ctx context.Context, programID string) (*repository.ProgramWithOwner, error) {
	return p.programRepo.GetWithOwner(ctx, programID)
}
