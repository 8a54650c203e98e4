package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	appmiddleware "github.com/anonto42/pulseblog/internal/middleware"
	"github.com/anonto42/pulseblog/internal/models"
	"github.com/anonto42/pulseblog/internal/repositories"
	"github.com/anonto42/pulseblog/validators"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionTTL = 24 * time.Hour

// AuthHandler handles registration, login/logout and profile editing
type AuthHandler struct {
	userRepository repositories.UserRepository
	jwtSecret      string
	mediaRoot      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, jwtSecret, mediaRoot string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		jwtSecret:      jwtSecret,
		mediaRoot:      mediaRoot,
	}
}

// RegisterAuthRoutes registers the users surface
func (h *AuthHandler) RegisterAuthRoutes(e *echo.Echo, requireLogin echo.MiddlewareFunc) {
	e.GET("/auth/signup/", h.Signup)
	e.POST("/auth/signup/", h.Signup)
	e.GET("/auth/login/", h.Login)
	e.POST("/auth/login/", h.Login)
	e.GET("/auth/logout/", h.Logout)
	e.POST("/auth/logout/", h.Logout)
	e.GET("/auth/profile_edit/", h.ProfileEdit, requireLogin)
	e.POST("/auth/profile_edit/", h.ProfileEdit, requireLogin)
}

func (h *AuthHandler) renderSignup(c echo.Context, form models.SignupForm, fieldErrors map[string]string) error {
	return c.Render(http.StatusOK, "signup.html", echo.Map{
		"Form":   form,
		"Errors": fieldErrors,
	})
}

// Signup registers a new user. The profile row is created together with the
// user; a registered user always has one.
func (h *AuthHandler) Signup(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return h.renderSignup(c, models.SignupForm{}, map[string]string{})
	}

	var form models.SignupForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderSignup(c, form, validators.FieldErrors(err))
	}

	if _, err := h.userRepository.GetUserByUsername(form.Username); err == nil {
		return h.renderSignup(c, form, map[string]string{"Username": "This username is taken"})
	}
	if _, err := h.userRepository.GetUserByEmail(form.Email); err == nil {
		return h.renderSignup(c, form, map[string]string{"Email": "This email is already registered"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	user := &models.User{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  string(hashed),
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, "/")
}

// safeNext accepts only same-site paths as a post-login destination
func safeNext(raw string) string {
	if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
		return raw
	}
	return "/"
}

func (h *AuthHandler) renderLogin(c echo.Context, form models.LoginForm, fieldErrors map[string]string) error {
	return c.Render(http.StatusOK, "login.html", echo.Map{
		"Form":   form,
		"Errors": fieldErrors,
		"Next":   c.QueryParam("next"),
	})
}

// Login authenticates a user and issues the session cookie, then redirects
// to the originally requested path if one was preserved
func (h *AuthHandler) Login(c echo.Context) error {
	if c.Request().Method != http.MethodPost {
		return h.renderLogin(c, models.LoginForm{}, map[string]string{})
	}

	var form models.LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderLogin(c, form, validators.FieldErrors(err))
	}

	user, err := h.userRepository.GetUserByUsername(form.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return h.renderLogin(c, form, map[string]string{"__all__": "Invalid username or password"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(form.Password)) != nil {
		return h.renderLogin(c, form, map[string]string{"__all__": "Invalid username or password"})
	}

	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.SetCookie(&http.Cookie{
		Name:     appmiddleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(sessionTTL.Seconds()),
	})

	return c.Redirect(http.StatusFound, safeNext(c.QueryParam("next")))
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     appmiddleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return c.Redirect(http.StatusFound, "/")
}

// ProfileEdit renders and handles the bio/picture form for the current user
func (h *AuthHandler) ProfileEdit(c echo.Context) error {
	user, err := h.userRepository.GetUserByID(getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, "profile_edit.html", echo.Map{
			"Form":   models.ProfileForm{Bio: user.Profile.Bio},
			"Errors": map[string]string{},
		})
	}

	var form models.ProfileForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "profile_edit.html", echo.Map{
			"Form":   form,
			"Errors": validators.FieldErrors(err),
		})
	}

	pic, err := saveUpload(c, "profile_pic", h.mediaRoot, "profile_pic")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	profile := user.Profile
	profile.Bio = form.Bio
	if pic != "" {
		profile.ProfilePic = pic
	}
	if err := h.userRepository.UpdateProfile(&profile); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, "/")
}
