package service

import (
	"hanabi/internal/config"
	"hanabi/internal/repository"
	"hanabi/internal/storage"
)

type Service struct {
	Post PostService
	Auth AuthService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Post: NewPostService(rep.Post, rep.Program, storage, cfg),
		Auth: NewAuthService(rep.User, cfg),
	}
}
