package handlers

import (
	"MemeShare/internal/config"
	"MemeShare/internal/middleware"
	"MemeShare/internal/service"
	"MemeShare/internal/storage"
	"MemeShare/internal/view"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const loginPath = "/login"

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	galleryService *service.GalleryService,
	linkService *service.LinkService,
	store storage.ImageStore,
	renderer *view.Renderer,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	pages := &pageRenderer{view: renderer, logger: logger}
	userHandler := NewUserHandler(userService, pages, logger, config)
	galleryHandler := NewGalleryHandler(galleryService, linkService, store, pages, logger, config)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		pages.renderError(w, http.StatusNotFound, "Page not found")
	})

	// локальные файлы изображений
	if local, ok := store.(*storage.LocalStore); ok && strings.HasPrefix(config.StaticURL, "/") {
		prefix := strings.TrimRight(config.StaticURL, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(local.Dir))))
	}

	// Public routes
	r.Get(loginPath, userHandler.LoginForm)
	r.Post(loginPath, userHandler.Login)
	r.Get("/{var}", galleryHandler.Lookup)

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(userService, loginPath))
		r.Get("/", galleryHandler.Home)
		r.Get("/image/{id:[0-9]+}", galleryHandler.Image)
		r.Get("/gen/{id}", galleryHandler.Gen)
		r.Get("/logout", userHandler.Logout)
	})

	return &Handler{Router: r}
}

// pageRenderer рендерит страницы и страницу ошибки.
type pageRenderer struct {
	view   *view.Renderer
	logger *zap.SugaredLogger
}

func (p *pageRenderer) render(w http.ResponseWriter, status int, name string, data any) {
	if err := p.view.Render(w, status, name, data); err != nil {
		p.logger.Errorw("render page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (p *pageRenderer) renderError(w http.ResponseWriter, status int, msg string) {
	p.render(w, status, view.PageError, view.ErrorPage{Status: status, Message: msg})
}
