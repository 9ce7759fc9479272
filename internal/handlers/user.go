package handlers

import (
	"MemeShare/internal/config"
	"MemeShare/internal/middleware"
	"MemeShare/internal/service"
	"MemeShare/internal/view"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	msgNotAPerson       = "You are not a person"
	msgPasswordRequired = "Password is required"
	msgEmailTooLong     = "Email is too long"
	msgBadPassword      = "Password is too long"
	msgInvalidLogin     = "Invalid email or password"
	msgNoAccount        = "You do not have an account"
	msgWrongPassword    = "Incorrect password"
)

// loginForm — поля формы входа. Формат email не проверяется: ключом входа
// служит то, что сохранено в users.email, в том числе "admin" или "bob@localhost".
type loginForm struct {
	Email    string `validate:"required,max=254"`
	Password string `validate:"required,max=1024"`
}

type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
	pages       *pageRenderer
	validate    *validator.Validate
}

// NewUserHandler создаёт хендлер пользователя
func NewUserHandler(userService *service.UserService, pages *pageRenderer, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{
		UserService: userService,
		Logger:      logger,
		Config:      cfg,
		pages:       pages,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

// LoginForm показывает форму входа
func (h *UserHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, http.StatusOK, view.PageLogin, view.LoginPage{Flash: middleware.PopFlash(w, r)})
}

// Login проверяет email/пароль и открывает сессию
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.pages.renderError(w, http.StatusBadRequest, msgNotAPerson)
		return
	}
	form := loginForm{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}
	if msg := h.validateForm(form); msg != "" {
		h.Logger.Warnw("login form rejected", "reason", msg)
		h.pages.renderError(w, http.StatusBadRequest, msg)
		return
	}

	user, err := h.UserService.Authenticate(r.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.Logger.Warnw("login failed", "email", form.Email, "error", err)
			h.pages.renderError(w, http.StatusUnauthorized, h.credentialsMessage(err))
			return
		}
		h.Logger.Errorw("authenticate", "error", err)
		h.pages.renderError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("set login cookie", "user_id", user.ID, "error", err)
		h.pages.renderError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	h.Logger.Infow("user logged in", "user_id", user.ID)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout закрывает сессию
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearLoginCookie(w)
	http.Redirect(w, r, loginPath, http.StatusFound)
}

// validateForm возвращает сообщение для первой ошибки; email проверяется раньше пароля.
func (h *UserHandler) validateForm(form loginForm) string {
	err := h.validate.Struct(form)
	if err == nil {
		return ""
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return msgNotAPerson
	}
	var emailMsg, passMsg string
	for _, fe := range verrs {
		switch fe.Field() {
		case "Email":
			if fe.Tag() == "required" {
				emailMsg = msgNotAPerson
			} else {
				emailMsg = msgEmailTooLong
			}
		case "Password":
			if fe.Tag() == "required" {
				passMsg = msgPasswordRequired
			} else {
				passMsg = msgBadPassword
			}
		}
	}
	if emailMsg != "" {
		return emailMsg
	}
	return passMsg
}

func (h *UserHandler) credentialsMessage(err error) string {
	if !h.Config.VerboseLoginErrors {
		return msgInvalidLogin
	}
	if errors.Is(err, service.ErrUserNotFound) {
		return msgNoAccount
	}
	return msgWrongPassword
}
