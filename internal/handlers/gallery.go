package handlers

import (
	"MemeShare/internal/config"
	"MemeShare/internal/middleware"
	"MemeShare/internal/model"
	"MemeShare/internal/service"
	"MemeShare/internal/storage"
	"MemeShare/internal/view"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	msgImageNotFound = "Image not found, dumping you back home"
	msgCodeNotFound  = "Obfuscation not found"
	msgCannotShare   = "Can't do that sir"
	msgInternal      = "Something went wrong, try again later"
)

// GalleryHandler — сетка миниатюр, просмотр изображения и короткие ссылки.
type GalleryHandler struct {
	Gallery *service.GalleryService
	Links   *service.LinkService
	Store   storage.ImageStore
	Logger  *zap.SugaredLogger
	Config  *config.Config
	pages   *pageRenderer
}

func NewGalleryHandler(
	gallery *service.GalleryService,
	links *service.LinkService,
	store storage.ImageStore,
	pages *pageRenderer,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *GalleryHandler {
	return &GalleryHandler{Gallery: gallery, Links: links, Store: store, Logger: logger, Config: cfg, pages: pages}
}

// Home — страница с миниатюрами. ?i=N перенаправляет на /N, ?p задаёт номер страницы, ?q фильтр.
func (h *GalleryHandler) Home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if i := strings.TrimSpace(q.Get("i")); i != "" {
		http.Redirect(w, r, "/"+url.PathEscape(i), http.StatusFound)
		return
	}

	page, err := strconv.Atoi(q.Get("p"))
	if err != nil || page < 1 {
		page = 1
	}
	filter := strings.TrimSpace(q.Get("q"))

	pageCount, err := h.Gallery.PageCount(r.Context(), filter)
	if err != nil {
		h.Logger.Errorw("count images", "filter", filter, "error", err)
		h.pages.renderError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	thumbs, err := h.Gallery.Thumbs(r.Context(), page, filter)
	if err != nil {
		h.Logger.Errorw("list thumbs", "page", page, "filter", filter, "error", err)
		h.pages.renderError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	data := view.MainPage{
		Flash:     middleware.PopFlash(w, r),
		Query:     filter,
		Page:      page,
		PageCount: pageCount,
		Thumbs:    make([]view.Thumb, 0, len(thumbs)),
	}
	if u, ok := middleware.UserFromContext(r.Context()); ok {
		data.UserName = u.ShortName
		if data.UserName == "" {
			data.UserName = u.Email
		}
	}
	for _, t := range thumbs {
		data.Thumbs = append(data.Thumbs, view.Thumb{ID: t.ID, Title: t.Title, URL: h.imageURL(r, t.PathThumb)})
	}
	for n := 1; n <= pageCount; n++ {
		data.Pages = append(data.Pages, view.PageLink{N: n, URL: pageURL(n, filter), Current: n == page})
	}
	if page > 1 {
		data.PrevURL = pageURL(page-1, filter)
	}
	if page < pageCount {
		data.NextURL = pageURL(page+1, filter)
	}

	h.pages.render(w, http.StatusOK, view.PageMain, data)
}

func pageURL(page int, filter string) string {
	v := url.Values{}
	v.Set("p", strconv.Itoa(page))
	if filter != "" {
		v.Set("q", filter)
	}
	return "/?" + v.Encode()
}

// Lookup разбирает /{var}: цифры означают id изображения, остальное считается коротким кодом.
func (h *GalleryHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	v := chi.URLParam(r, "var")
	if isDigits(v) {
		h.showImage(w, r, v)
		return
	}

	img, err := h.Links.ImageByCode(r.Context(), v)
	if errors.Is(err, service.ErrCodeNotFound) {
		h.Logger.Warnw("unknown share code", "code", v)
		h.pages.renderError(w, http.StatusNotFound, msgCodeNotFound)
		return
	}
	if err != nil {
		h.Logger.Errorw("resolve share code", "code", v, "error", err)
		h.pages.renderError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	h.pages.render(w, http.StatusOK, view.PageOb, view.ObPage{Image: h.imageView(r, img)})
}

// Image — /image/{id}, то же, что /{id}, но только для вошедших.
func (h *GalleryHandler) Image(w http.ResponseWriter, r *http.Request) {
	h.showImage(w, r, chi.URLParam(r, "id"))
}

func (h *GalleryHandler) showImage(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	var img *model.Image
	if err == nil {
		img, err = h.Gallery.ImageByID(r.Context(), id)
	}
	if err != nil {
		var numErr *strconv.NumError
		if errors.Is(err, service.ErrImageNotFound) || errors.As(err, &numErr) {
			h.Logger.Warnw("image not found", "id", rawID)
			middleware.SetFlash(w, msgImageNotFound)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		h.Logger.Errorw("load image", "id", rawID, "error", err)
		h.pages.renderError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	_, authed := middleware.GetUserIDFromContext(r.Context())
	h.pages.render(w, http.StatusOK, view.PageSingle, view.SinglePage{
		Flash:  middleware.PopFlash(w, r),
		Image:  h.imageView(r, img),
		Back:   r.Referer(),
		GenURL: "/gen/" + strconv.FormatInt(img.ID, 10),
		Authed: authed,
	})
}

// Gen создаёт короткий код и перенаправляет на {root}/{code}.
func (h *GalleryHandler) Gen(w http.ResponseWriter, r *http.Request) {
	rawID := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		h.Logger.Warnw("bad image id for share link", "id", rawID)
		h.pages.renderError(w, http.StatusBadRequest, msgCannotShare)
		return
	}

	code, err := h.Links.CreateLinkFor(r.Context(), id)
	switch {
	case errors.Is(err, service.ErrImageNotFound):
		h.Logger.Warnw("share link for missing image", "id", id)
		h.pages.renderError(w, http.StatusNotFound, msgCannotShare)
		return
	case err != nil:
		h.Logger.Errorw("create share link", "id", id, "error", err)
		h.pages.renderError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	http.Redirect(w, r, h.rootURL(r)+"/"+code, http.StatusFound)
}

// rootURL возвращает PUBLIC_URL или корень, восстановленный из запроса (с учётом прокси).
func (h *GalleryHandler) rootURL(r *http.Request) string {
	if h.Config.PublicURL != "" {
		return h.Config.PublicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}
	host := r.Host
	if fh := r.Header.Get("X-Forwarded-Host"); fh != "" {
		host = strings.TrimSpace(strings.Split(fh, ",")[0])
	}
	return scheme + "://" + host
}

func (h *GalleryHandler) imageURL(r *http.Request, path string) string {
	u, err := h.Store.URL(r.Context(), path)
	if err != nil {
		h.Logger.Warnw("image url", "path", path, "error", err)
		return ""
	}
	return u
}

func (h *GalleryHandler) imageView(r *http.Request, img *model.Image) view.Image {
	return view.Image{
		ID:        img.ID,
		Title:     img.Title,
		URL:       h.imageURL(r, img.Path),
		DateAdded: img.DateAdded,
		Rating:    img.Rating,
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
