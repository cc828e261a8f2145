package testRepository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hanabi/internal/apperror"
	"hanabi/internal/repository"
)

func TestProgramRepositoryImpl_GetWithOwner(t *testing.T) {
	now := time.Now()

	t.Run("Возвращает программу с именем владельца", func(t *testing.T) {
		db, mock := setupMockDB(t)

		programData := `{"shells":12}`
		rows := sqlmock.NewRows([]string{
			"program_id", "user_id", "title", "description", "program_data", "created_at", "username",
		}).AddRow("prog-1", "user-1", "Summer Finale", "", programData, now, "hanako")

		mock.ExpectQuery(`SELECT p.program_id, p.user_id, p.title, p.description, p.program_data, p.created_at, u.username`).
			WithArgs("prog-1").
			WillReturnRows(rows)

		repo := repository.NewProgramRepository(db)
		program, err := repo.GetWithOwner(context.Background(), "prog-1")

		require.NoError(t, err)
		assert.Equal(t, "Summer Finale", program.Title)
		assert.Equal(t, "hanako", program.Username)
		// payload возвращается байт-в-байт
		assert.Equal(t, programData, program.ProgramData)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Несуществующая программа дает NotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)

		mock.ExpectQuery(`SELECT p.program_id, p.user_id, p.title, p.description, p.program_data, p.created_at, u.username`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{
				"program_id", "user_id", "title", "description", "program_data", "created_at", "username",
			}))

		repo := repository.NewProgramRepository(db)
		program, err := repo.GetWithOwner(context.Background(), "missing")

		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
		assert.Nil(t, program)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProgramRepositoryImpl_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{
		"program_id", "user_id", "title", "description", "program_data", "created_at",
	}).AddRow("prog-1", "user-1", "t", "", "data", time.Now())

	mock.ExpectQuery(`SELECT \* FROM programs WHERE program_id = \$1`).
		WithArgs("prog-1").
		WillReturnRows(rows)

	repo := repository.NewProgramRepository(db)
	program, err := repo.GetByID(context.Background(), "prog-1")

	require.NoError(t, err)
	assert.Equal(t, "prog-1", program.ProgramID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramRepositoryImpl_GetByUserID(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{
		"program_id", "user_id", "title", "description", "program_data", "created_at",
	}).
		AddRow("prog-1", "user-1", "a", "", "d1", time.Now()).
		AddRow("prog-2", "user-1", "b", "", "d2", time.Now().Add(-time.Hour))

	mock.ExpectQuery(`SELECT \* FROM programs WHERE user_id = \$1 ORDER BY created_at DESC`).
		WithArgs("user-1").
		WillReturnRows(rows)

	repo := repository.NewProgramRepository(db)
	programs, err := repo.GetByUserID(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, programs, 2)
	for _, p := range programs {
		assert.Equal(t, "user-1", p.UserID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
