package service

import (
	"MemeShare/internal/model"
	"MemeShare/internal/repo"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"gorm.io/gorm"
)

const (
	// Alphabet символы коротких кодов: 48 штук, q и x отсутствуют в обоих регистрах.
	// Литерал совпадает с тем, из которого выданы существующие коды; не менять.
	Alphabet   = "abcdefghijklmnoprstuvwyzABCDEFGHIJKLMNOPRSTUVWYZ"
	CodeLength = 6

	DefaultMaxAttempts = 3
)

var (
	ErrCodeNotFound  = errors.New("share code not found")
	ErrCodeCollision = errors.New("no free share code found")
)

// CodeGenerator выдаёт новый кандидат в короткие коды.
type CodeGenerator func() (string, error)

// GenerateCode возвращает CodeLength символов из Alphabet, равномерно и с повторениями.
func GenerateCode() (string, error) {
	size := big.NewInt(int64(len(Alphabet)))
	b := make([]byte, CodeLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		b[i] = Alphabet[n.Int64()]
	}
	return string(b), nil
}

// LinkService выдаёт короткие коды для изображений и разрешает их обратно.
type LinkService struct {
	images      repo.ImageRepository
	memes       repo.MemeRepository
	maxAttempts int
	generate    CodeGenerator
	now         func() time.Time
}

func NewLinkService(images repo.ImageRepository, memes repo.MemeRepository, maxAttempts int) *LinkService {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &LinkService{
		images:      images,
		memes:       memes,
		maxAttempts: maxAttempts,
		generate:    GenerateCode,
		now:         time.Now,
	}
}

// WithGenerator подменяет генератор кодов.
func (s *LinkService) WithGenerator(g CodeGenerator) *LinkService {
	s.generate = g
	return s
}

// CreateLinkFor создаёт код для существующего изображения. Занятый код
// (найден заранее или отвергнут уникальным ключом) заменяется новым,
// всего не более maxAttempts попыток.
func (s *LinkService) CreateLinkFor(ctx context.Context, imageID int64) (string, error) {
	if _, err := s.images.GetImageByID(ctx, imageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrImageNotFound
		}
		return "", err
	}

	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		code, err := s.generate()
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		taken, err := s.memes.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if taken {
			continue
		}
		err = s.memes.CreateMeme(ctx, &model.Meme{Code: code, ImageID: imageID, Created: s.now().UTC()})
		if repo.IsDuplicateKey(err) {
			continue
		}
		if err != nil {
			return "", err
		}
		return code, nil
	}
	return "", ErrCodeCollision
}

// ImageByCode разрешает код в изображение.
func (s *LinkService) ImageByCode(ctx context.Context, code string) (*model.Image, error) {
	if code == "" {
		return nil, ErrCodeNotFound
	}
	img, err := s.memes.GetImageByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCodeNotFound
	}
	return img, err
}

// LinksFor перечисляет выданные коды изображения в порядке создания.
func (s *LinkService) LinksFor(ctx context.Context, imageID int64) ([]model.Meme, error) {
	return s.memes.ListByImage(ctx, imageID)
}
