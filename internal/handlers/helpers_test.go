package handlers_test

import (
	"MemeShare/internal/config"
	"MemeShare/internal/crypto"
	"MemeShare/internal/handlers"
	"MemeShare/internal/middleware"
	"MemeShare/internal/model"
	"MemeShare/internal/repo"
	"MemeShare/internal/service"
	"MemeShare/internal/storage"
	"MemeShare/internal/view"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Local light mocks
type hMockUserRepo struct{ mock.Mock }

func (m *hMockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockUserRepo) UpdateLastLogin(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}
func (m *hMockUserRepo) UpdatePassword(ctx context.Context, id int64, hash, salt string) error {
	return m.Called(ctx, id, hash, salt).Error(0)
}

var _ repo.UserRepository = (*hMockUserRepo)(nil)

type hMockImageRepo struct{ mock.Mock }

func (m *hMockImageRepo) CountImages(ctx context.Context, filter string) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}
func (m *hMockImageRepo) ListThumbs(ctx context.Context, limit, offset int, filter string) ([]model.Thumb, error) {
	args := m.Called(ctx, limit, offset, filter)
	if v, ok := args.Get(0).([]model.Thumb); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockImageRepo) GetImageByID(ctx context.Context, id int64) (*model.Image, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockImageRepo) CreateImage(ctx context.Context, img *model.Image) error {
	return m.Called(ctx, img).Error(0)
}

var _ repo.ImageRepository = (*hMockImageRepo)(nil)

type hMockMemeRepo struct{ mock.Mock }

func (m *hMockMemeRepo) CreateMeme(ctx context.Context, meme *model.Meme) error {
	return m.Called(ctx, meme).Error(0)
}
func (m *hMockMemeRepo) CodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}
func (m *hMockMemeRepo) GetImageByCode(ctx context.Context, code string) (*model.Image, error) {
	args := m.Called(ctx, code)
	if v, ok := args.Get(0).(*model.Image); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *hMockMemeRepo) ListByImage(ctx context.Context, imageID int64) ([]model.Meme, error) {
	args := m.Called(ctx, imageID)
	if v, ok := args.Get(0).([]model.Meme); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.MemeRepository = (*hMockMemeRepo)(nil)

type testEnv struct {
	router    http.Handler
	cfg       *config.Config
	users     *hMockUserRepo
	images    *hMockImageRepo
	memes     *hMockMemeRepo
	hasher    *crypto.Hasher
	staticDir string
}

func newHandlersTestEnv(t *testing.T, tweak ...func(*config.Config)) *testEnv {
	t.Helper()
	staticDir := t.TempDir()
	cfg := &config.Config{AuthSecret: "test-secret", StaticDir: staticDir, StaticURL: "/static/"}
	for _, f := range tweak {
		f(cfg)
	}
	logger := zap.NewNop().Sugar()

	hasher := crypto.NewHasher("bcrypt", "", false)
	hasher.BcryptCost = bcrypt.MinCost

	ur, ir, mr := &hMockUserRepo{}, &hMockImageRepo{}, &hMockMemeRepo{}
	renderer, err := view.New()
	if err != nil {
		t.Fatalf("templates: %v", err)
	}

	h := handlers.NewHandler(
		service.NewUserService(ur, hasher, logger),
		service.NewGalleryService(ir, 20),
		service.NewLinkService(ir, mr, 3),
		storage.NewLocalStore(staticDir, cfg.StaticURL),
		renderer,
		logger,
		cfg,
	)
	return &testEnv{router: h.Router, cfg: cfg, users: ur, images: ir, memes: mr, hasher: hasher, staticDir: staticDir}
}

// login подставляет cookie сессии и разрешает загрузку пользователя.
func (e *testEnv) login(t *testing.T, req *http.Request, userID int64) {
	t.Helper()
	e.users.On("GetUserByID", mock.Anything, userID).
		Return(&model.User{ID: userID, ShortName: "bob", Email: "bob@example.com", Active: true}, nil).Maybe()
	addAuth(t, req, userID, e.cfg.AuthSecret)
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func addAuth(t *testing.T, req *http.Request, userID int64, secret string) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, secret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
