package repo

import (
	"MemeShare/internal/model"
	"context"

	"gorm.io/gorm"
)

// MemeRepository хранит соответствия «код → изображение». Только вставка и чтение.
type MemeRepository interface {
	CreateMeme(ctx context.Context, m *model.Meme) error
	CodeExists(ctx context.Context, code string) (bool, error)
	// GetImageByCode возвращает gorm.ErrRecordNotFound для неизвестного кода.
	GetImageByCode(ctx context.Context, code string) (*model.Image, error)
	ListByImage(ctx context.Context, imageID int64) ([]model.Meme, error)
}

type memeRepo struct {
	db *gorm.DB
}

func NewMemeRepository(db *gorm.DB) MemeRepository {
	return &memeRepo{db: db}
}

func (r *memeRepo) CreateMeme(ctx context.Context, m *model.Meme) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *memeRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Meme{}).Where("id = ?", code).Count(&n).Error
	return n > 0, err
}

func (r *memeRepo) GetImageByCode(ctx context.Context, code string) (*model.Image, error) {
	var img model.Image
	err := r.db.WithContext(ctx).Model(&model.Image{}).
		Select("images.imgid, images.title, images.path, images.path_thumb, images.date_added, images.rating").
		Joins("JOIN meme ON meme.imgid = images.imgid").
		Where("meme.id = ?", code).
		Take(&img).Error
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *memeRepo) ListByImage(ctx context.Context, imageID int64) ([]model.Meme, error) {
	list := []model.Meme{}
	err := r.db.WithContext(ctx).
		Where("imgid = ?", imageID).
		Order("created ASC").
		Find(&list).Error
	return list, err
}
