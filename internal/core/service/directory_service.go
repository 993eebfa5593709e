package service

import (
	"context"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

// UserService serves the user administration pages.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	return s.repo.List(ctx, filter)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// FileService serves the attachments pages.
type FileService struct {
	repo ports.FileRepository
}

func NewFileService(repo ports.FileRepository) *FileService {
	return &FileService{repo: repo}
}

func (s *FileService) List(ctx context.Context, meetingID string) ([]*domain.File, error) {
	return s.repo.List(ctx, meetingID)
}

func (s *FileService) Get(ctx context.Context, id string) (*domain.File, error) {
	return s.repo.FindByID(ctx, id)
}
