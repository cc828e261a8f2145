package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"hanabi/internal/apperror"
	"hanabi/internal/models"
)

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

const insertPostQuery = `
        INSERT INTO posts
        (post_id, user_id, title, description, post_type, file_url, program_id, created_at)
        VALUES
        (:post_id, :user_id, :title, :description, :post_type, :file_url, :program_id, :created_at)
    `

const insertProgramQuery = `
        INSERT INTO programs
        (program_id, user_id, title, description, program_data, created_at)
        VALUES
        (:program_id, :user_id, :title, :description, :program_data, :created_at)
    `

// CreateWithProgram пишет программу и пост в одной транзакции:
// либо создаются обе записи, либо ни одной
func (r *PostRepositoryImpl) CreateWithProgram(ctx context.Context, post *models.Post, program *models.Program) error {
	now := time.Now()

	if program.ProgramID == "" {
		program.ProgramID = uuid.New().String()
	}
	program.CreatedAt = now

	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	post.PostType = models.PostTypeProgram
	post.ProgramID = &program.ProgramID
	post.FileURL = nil
	post.CreatedAt = now

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.NamedExecContext(ctx, insertProgramQuery, program); err != nil {
		return fmt.Errorf("ошибка при создании программы: %w", err)
	}

	if _, err = tx.NamedExecContext(ctx, insertPostQuery, post); err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	if post.PostID == "" {
		post.PostID = uuid.New().String()
	}
	post.CreatedAt = time.Now()

	_, err := r.DB.NamedExecContext(ctx, insertPostQuery, post)
	if err != nil {
		return fmt.Errorf("ошибка при создании поста: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetAll(ctx context.Context, filterType models.PostType) ([]models.Post, error) {
	var posts []models.Post
	var err error

	// порядок: новые сверху
	if filterType == "" {
		query := `SELECT * FROM posts ORDER BY created_at DESC`
		err = r.DB.SelectContext(ctx, &posts, query)
	} else {
		query := `SELECT * FROM posts WHERE post_type = $1 ORDER BY created_at DESC`
		err = r.DB.SelectContext(ctx, &posts, query, filterType)
	}

	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) GetByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE user_id = $1 ORDER BY created_at DESC`

	var posts []models.Post
	err := r.DB.SelectContext(ctx, &posts, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении постов пользователя: %w", err)
	}

	return posts, nil
}

// DeleteOwned удаляет пост только если он принадлежит userID. Отсутствующий
// и чужой пост неразличимы для вызывающего: в обоих случаях NotFound.
// Программа поста удаляется в той же транзакции.
func (r *PostRepositoryImpl) DeleteOwned(ctx context.Context, userID, postID string) (*string, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка при открытии транзакции: %w", err)
	}
	defer tx.Rollback()

	var row struct {
		ProgramID *string `db:"program_id"`
		FileURL   *string `db:"file_url"`
	}

	query := `SELECT program_id, file_url FROM posts WHERE post_id = $1 AND user_id = $2`
	err = tx.GetContext(ctx, &row, query, postID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("пост")
		}
		return nil, fmt.Errorf("ошибка при поиске поста: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM posts WHERE post_id = $1`, postID); err != nil {
		return nil, fmt.Errorf("ошибка при удалении поста: %w", err)
	}

	if row.ProgramID != nil {
		_, err = tx.ExecContext(ctx, `DELETE FROM programs WHERE program_id = $1`, *row.ProgramID)
		if err != nil {
			return nil, fmt.Errorf("ошибка при удалении программы: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}

	return row.FileURL, nil
}
