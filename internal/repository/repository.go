package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"hanabi/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string, expiryTime time.Time) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
}

type PostRepository interface {
	// CreateWithProgram создает пару Program+Post в одной транзакции
	CreateWithProgram(ctx context.Context, post *models.Post, program *models.Program) error
	Create(ctx context.Context, post *models.Post) error
	GetAll(ctx context.Context, filterType models.PostType) ([]models.Post, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Post, error)
	// DeleteOwned удаляет пост владельца вместе с его программой (каскад)
	// и возвращает file_url удаленного поста, если он был
	DeleteOwned(ctx context.Context, userID, postID string) (*string, error)
}

type ProgramRepository interface {
	GetByID(ctx context.Context, programID string) (*models.Program, error)
	GetWithOwner(ctx context.Context, programID string) (*ProgramWithOwner, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Program, error)
}

// ProgramWithOwner - программа вместе с отображаемым именем владельца
type ProgramWithOwner struct {
	models.Program
	Username string `db:"username"`
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Program ProgramRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:    NewUserRepository(db),
		Post:    NewPostRepository(db),
		Program: NewProgramRepository(db),
	}
}
