package service

import (
	"MemeShare/internal/model"
	"MemeShare/internal/repo"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// DefaultPageSize размер страницы сетки миниатюр.
const DefaultPageSize = 20

var ErrImageNotFound = errors.New("image not found")

// GalleryService — постраничный просмотр изображений с фильтром по названию.
type GalleryService struct {
	repo     repo.ImageRepository
	pageSize int
}

func NewGalleryService(r repo.ImageRepository, pageSize int) *GalleryService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &GalleryService{repo: r, pageSize: pageSize}
}

func (s *GalleryService) PageSize() int { return s.pageSize }

// PageCount = ceil(число подходящих изображений / размер страницы).
func (s *GalleryService) PageCount(ctx context.Context, filter string) (int, error) {
	n, err := s.repo.CountImages(ctx, strings.TrimSpace(filter))
	if err != nil {
		return 0, err
	}
	size := int64(s.pageSize)
	return int((n + size - 1) / size), nil
}

// ImageThumbs выбирает миниатюры по размеру страницы и смещению.
func (s *GalleryService) ImageThumbs(ctx context.Context, pageSize, offset int, filter string) ([]model.Thumb, error) {
	if pageSize <= 0 {
		pageSize = s.pageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListThumbs(ctx, pageSize, offset, strings.TrimSpace(filter))
}

// Thumbs возвращает страницу page (с единицы); page < 1 трактуется как первая.
func (s *GalleryService) Thumbs(ctx context.Context, page int, filter string) ([]model.Thumb, error) {
	if page < 1 {
		page = 1
	}
	return s.ImageThumbs(ctx, s.pageSize, (page-1)*s.pageSize, filter)
}

func (s *GalleryService) ImageByID(ctx context.Context, id int64) (*model.Image, error) {
	img, err := s.repo.GetImageByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrImageNotFound
	}
	return img, err
}

// AddImage регистрирует изображение, уже загруженное в хранилище.
func (s *GalleryService) AddImage(ctx context.Context, title, path, thumb string, rating int) (*model.Image, error) {
	title = strings.TrimSpace(title)
	if title == "" || path == "" || thumb == "" {
		return nil, errors.New("title, path and thumbnail are required")
	}
	img := &model.Image{Title: title, Path: path, PathThumb: thumb, Rating: rating}
	if err := s.repo.CreateImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}
