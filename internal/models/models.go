package models

import (
	"time"
)

type User struct {
	UserID                 string    `json:"userId" db:"user_id"`
	Username               string    `json:"username" db:"username"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
}

// Program - программа фейерверк-шоу, payload хранится как непрозрачная строка
type Program struct {
	ProgramID   string    `json:"programId" db:"program_id"`
	UserID      string    `json:"userId" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	ProgramData string    `json:"programData" db:"program_data"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type PostType string

const (
	PostTypeProgram      PostType = "program"
	PostTypeImage        PostType = "image"
	PostTypeVideo        PostType = "video"
	PostTypeIllustration PostType = "illustration"
)

// IsFileBacked reports whether posts of this type carry an uploaded file.
func (t PostType) IsFileBacked() bool {
	return t == PostTypeImage || t == PostTypeVideo || t == PostTypeIllustration
}

func (t PostType) Valid() bool {
	return t == PostTypeProgram || t.IsFileBacked()
}

// Post - пост пользователя: ровно одно из {FileURL, ProgramID} заполнено,
// в соответствии с PostType
type Post struct {
	PostID      string    `json:"postId" db:"post_id"`
	UserID      string    `json:"userId" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	PostType    PostType  `json:"postType" db:"post_type"`
	FileURL     *string   `json:"fileUrl,omitempty" db:"file_url"`
	ProgramID   *string   `json:"programId,omitempty" db:"program_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
