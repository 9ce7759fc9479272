package service

import (
	"MemeShare/internal/crypto"
	"MemeShare/internal/model"
	"MemeShare/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials общий признак неудачного входа.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = fmt.Errorf("%w: account not found", ErrInvalidCredentials)
	ErrWrongPassword      = fmt.Errorf("%w: incorrect password", ErrInvalidCredentials)
	ErrEmailTaken         = errors.New("email already registered")
)

type UserService struct {
	repo   repo.UserRepository
	hasher *crypto.Hasher
	logger *zap.SugaredLogger
	now    func() time.Time
}

func NewUserService(r repo.UserRepository, h *crypto.Hasher, logger *zap.SugaredLogger) *UserService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &UserService{repo: r, hasher: h, logger: logger, now: time.Now}
}

// activeByEmail возвращает активного пользователя или ErrUserNotFound.
func (s *UserService) activeByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.repo.GetUserByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UserIDByEmail ищет id активного пользователя по email.
func (s *UserService) UserIDByEmail(ctx context.Context, email string) (int64, error) {
	u, err := s.activeByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}

// UserByID загружает пользователя для восстановления сессии.
// Отключённый пользователь считается отсутствующим.
func (s *UserService) UserByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if !u.Active {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// Authenticate проверяет пару email/пароль. Ошибки ErrUserNotFound и ErrWrongPassword
// оборачивают ErrInvalidCredentials; что из них показать пользователю, решает вызывающий.
// После успешного входа обновляется last_login, устаревший хеш пересчитывается.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	u, err := s.activeByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	ok, rehash, err := s.hasher.Verify(u.Password, u.Salt, password)
	if err != nil {
		s.logger.Warnw("password verification failed", "user_id", u.ID, "error", err)
		return nil, errors.Join(ErrWrongPassword, err)
	}
	if !ok {
		return nil, ErrWrongPassword
	}

	if rehash {
		if hash, salt, herr := s.hasher.Hash(password); herr != nil {
			s.logger.Errorw("rehash password", "user_id", u.ID, "error", herr)
		} else if uerr := s.repo.UpdatePassword(ctx, u.ID, hash, salt); uerr != nil {
			s.logger.Errorw("store rehashed password", "user_id", u.ID, "error", uerr)
		} else {
			u.Password, u.Salt = hash, salt
		}
	}

	at := s.now().UTC()
	if err := s.repo.UpdateLastLogin(ctx, u.ID, at); err != nil {
		s.logger.Errorw("update last_login", "user_id", u.ID, "error", err)
	} else {
		u.LastLogin = &at
	}
	return u, nil
}

// CreateUser заводит активную учётную запись с паролем текущей схемы.
func (s *UserService) CreateUser(ctx context.Context, email, shortName, password string, admin bool) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, salt, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u, err := s.repo.CreateUser(ctx, &model.User{
		Email:     email,
		ShortName: shortName,
		Password:  hash,
		Salt:      salt,
		Admin:     admin,
		Active:    true,
	})
	if repo.IsDuplicateKey(err) {
		return nil, ErrEmailTaken
	}
	return u, err
}
