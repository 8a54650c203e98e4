package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/pulseblog/internal/cache"
	"github.com/anonto42/pulseblog/internal/handlers"
	appmiddleware "github.com/anonto42/pulseblog/internal/middleware"
	"github.com/anonto42/pulseblog/internal/models"
	"github.com/anonto42/pulseblog/internal/pagination"
	"github.com/anonto42/pulseblog/internal/render"
	"github.com/anonto42/pulseblog/internal/repositories"
	"github.com/anonto42/pulseblog/validators"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"
const testPerPage = 10

// setupTestApp wires the real routes over the mock store
func setupTestApp(t *testing.T) (*echo.Echo, *repositories.MockStore, *cache.MemoryCache) {
	t.Helper()

	e := echo.New()
	renderer, err := render.New()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	e.Renderer = renderer
	e.Validator = validators.NewValidator()
	e.Use(appmiddleware.LoadSession(testSecret))
	requireLogin := appmiddleware.RequireLogin()

	store := repositories.NewMock()
	pageCache := cache.NewMemoryCache()
	pager := pagination.New(testPerPage)
	mediaRoot := t.TempDir()

	handlers.NewFeedHandler(store, store, store, store, pager).
		RegisterFeedRoutes(e, requireLogin, cache.Middleware(pageCache, time.Minute))
	handlers.NewPostHandler(store, store, mediaRoot).RegisterPostRoutes(e, requireLogin)
	handlers.NewCommentHandler(store, store).RegisterCommentRoutes(e, requireLogin)
	handlers.NewFollowHandler(store, store).RegisterFollowRoutes(e, requireLogin)
	handlers.NewAuthHandler(store, testSecret, mediaRoot).RegisterAuthRoutes(e, requireLogin)
	handlers.NewCacheHandler(pageCache).RegisterCacheRoutes(e)

	return e, store, pageCache
}

// sessionCookie builds a signed session cookie for a user
func sessionCookie(t *testing.T, user *models.User) *http.Cookie {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign session token: %v", err)
	}
	return &http.Cookie{Name: appmiddleware.SessionCookieName, Value: token}
}

func createUser(t *testing.T, store *repositories.MockStore, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	if err := store.CreateUser(user); err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return user
}

func createPost(t *testing.T, store *repositories.MockStore, author *models.User, text string, groupID *uint, at time.Time) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID, GroupID: groupID, CreatedAt: at}
	if err := store.CreatePost(post); err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	return post
}

func createGroup(t *testing.T, store *repositories.MockStore, title, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: title, Slug: slug}
	if err := store.CreateGroup(group); err != nil {
		t.Fatalf("failed to create group %q: %v", slug, err)
	}
	return group
}

func doGET(t *testing.T, e *echo.Echo, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doPOST(t *testing.T, e *echo.Echo, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func wantRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d (body: %s)", rec.Code, http.StatusFound, rec.Body.String())
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("Location = %q, want %q", got, location)
	}
}
