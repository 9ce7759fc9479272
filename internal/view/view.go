package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Имена страниц.
const (
	PageMain   = "main"
	PageSingle = "single"
	PageOb     = "ob"
	PageError  = "error"
	PageLogin  = "login"
)

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
	"stars": func(n int) []struct{} { return make([]struct{}, max(n, 0)) },
}

// Renderer хранит разобранные шаблоны: каждая страница вместе с общим layout.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, name := range []string{PageMain, PageSingle, PageOb, PageError, PageLogin} {
		t, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render выполняет шаблон в буфер, чтобы ошибка шаблона не оставила
// наполовину записанный ответ.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Данные страниц.

type Thumb struct {
	ID    int64
	Title string
	URL   string
}

type PageLink struct {
	N       int
	URL     string
	Current bool
}

type MainPage struct {
	UserName  string
	Flash     string
	Query     string
	Thumbs    []Thumb
	Page      int
	PageCount int
	Pages     []PageLink
	PrevURL   string
	NextURL   string
}

type Image struct {
	ID        int64
	Title     string
	URL       string
	DateAdded time.Time
	Rating    int
}

type SinglePage struct {
	Flash  string
	Image  Image
	Back   string
	GenURL string
	Authed bool
}

type ObPage struct {
	Image Image
}

type ErrorPage struct {
	Status  int
	Message string
}

type LoginPage struct {
	Flash string
	Email string
}
