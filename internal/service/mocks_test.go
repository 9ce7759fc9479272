package service

import (
	"MemeShare/internal/model"
	"MemeShare/internal/repo"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// мок для repo.UserRepository
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *mockUserRepo) UpdatePassword(ctx context.Context, id int64, hash, salt string) error {
	return m.Called(ctx, id, hash, salt).Error(0)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// мок для repo.ImageRepository
type mockImageRepo struct{ mock.Mock }

func (m *mockImageRepo) CountImages(ctx context.Context, filter string) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockImageRepo) ListThumbs(ctx context.Context, limit, offset int, filter string) ([]model.Thumb, error) {
	args := m.Called(ctx, limit, offset, filter)
	if v, ok := args.Get(0).([]model.Thumb); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockImageRepo) GetImageByID(ctx context.Context, id int64) (*model.Image, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockImageRepo) CreateImage(ctx context.Context, img *model.Image) error {
	return m.Called(ctx, img).Error(0)
}

var _ repo.ImageRepository = (*mockImageRepo)(nil)

// мок для repo.MemeRepository
type mockMemeRepo struct{ mock.Mock }

func (m *mockMemeRepo) CreateMeme(ctx context.Context, meme *model.Meme) error {
	return m.Called(ctx, meme).Error(0)
}

func (m *mockMemeRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *mockMemeRepo) GetImageByCode(ctx context.Context, code string) (*model.Image, error) {
	args := m.Called(ctx, code)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockMemeRepo) ListByImage(ctx context.Context, imageID int64) ([]model.Meme, error) {
	args := m.Called(ctx, imageID)
	if v, ok := args.Get(0).([]model.Meme); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.MemeRepository = (*mockMemeRepo)(nil)
