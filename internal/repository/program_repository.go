package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"hanabi/internal/apperror"
	"hanabi/internal/models"
)

type ProgramRepositoryImpl struct {
	DB *sqlx.DB
}

func NewProgramRepository(db *sqlx.DB) *ProgramRepositoryImpl {
	return &ProgramRepositoryImpl{DB: db}
}

func (r *ProgramRepositoryImpl) GetByID(ctx context.Context, programID string) (*models.Program, error) {
	query := `SELECT * FROM programs WHERE program_id = $1`

	var program models.Program
	err := r.DB.GetContext(ctx, &program, query, programID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("программа")
		}
		return nil, fmt.Errorf("ошибка при получении программы: %w", err)
	}

	return &program, nil
}

// GetWithOwner возвращает программу вместе с именем владельца,
// чтение публичное, без проверки владения
func (r *ProgramRepositoryImpl) GetWithOwner(ctx context.Context, programID string) (*ProgramWithOwner, error) {
	query := `
		SELECT p.program_id, p.user_id, p.title, p.description, p.program_data, p.created_at, u.username
		FROM programs p
		JOIN users u ON u.user_id = p.user_id
		WHERE p.program_id = $1
	`

	var program ProgramWithOwner
	err := r.DB.GetContext(ctx, &program, query, programID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("программа")
		}
		return nil, fmt.Errorf("ошибка при получении программы: %w", err)
	}

	return &program, nil
}

func (r *ProgramRepositoryImpl) GetByUserID(ctx context.Context, userID string) ([]models.Program, error) {
	query := `SELECT * FROM programs WHERE user_id = $1 ORDER BY created_at DESC`

	var programs []models.Program
	err := r.DB.SelectContext(ctx, &programs, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении программ пользователя: %w", err)
	}

	return programs, nil
}
