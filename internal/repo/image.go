package repo

import (
	"MemeShare/internal/model"
	"context"
	"strings"

	"gorm.io/gorm"
)

// ImageRepository контракт чтения изображений. Фильтр это подстрока названия
// без учёта регистра; пустой фильтр означает «все изображения».
type ImageRepository interface {
	CountImages(ctx context.Context, filter string) (int64, error)
	// ListThumbs возвращает миниатюры, отсортированные по названию.
	ListThumbs(ctx context.Context, limit, offset int, filter string) ([]model.Thumb, error)
	GetImageByID(ctx context.Context, id int64) (*model.Image, error)
	CreateImage(ctx context.Context, img *model.Image) error
}

type imageRepo struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepo{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// titleFilter передаёт шаблон LIKE только параметром запроса. Обе стороны сравнения
// проходят одно и то же приведение регистра: в SQLite это fold_case, в Postgres LOWER.
func titleFilter(filter string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter == "" {
			return db
		}
		if db.Dialector.Name() == string(DialectPostgres) {
			pattern := "%" + likeEscaper.Replace(filter) + "%"
			return db.Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, pattern)
		}
		pattern := "%" + likeEscaper.Replace(foldCase(filter)) + "%"
		return db.Where(`fold_case(title) LIKE ? ESCAPE '\'`, pattern)
	}
}

func (r *imageRepo) CountImages(ctx context.Context, filter string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Image{}).
		Scopes(titleFilter(filter)).
		Count(&n).Error
	return n, err
}

func (r *imageRepo) ListThumbs(ctx context.Context, limit, offset int, filter string) ([]model.Thumb, error) {
	thumbs := []model.Thumb{}
	err := r.db.WithContext(ctx).Model(&model.Image{}).
		Scopes(titleFilter(filter)).
		Select("title, imgid, path_thumb").
		Order("title ASC").
		Order("imgid ASC").
		Limit(limit).
		Offset(offset).
		Scan(&thumbs).Error
	if err != nil {
		return nil, err
	}
	return thumbs, nil
}

func (r *imageRepo) GetImageByID(ctx context.Context, id int64) (*model.Image, error) {
	var img model.Image
	if err := r.db.WithContext(ctx).Where("imgid = ?", id).First(&img).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *imageRepo) CreateImage(ctx context.Context, img *model.Image) error {
	return r.db.WithContext(ctx).Create(img).Error
}
