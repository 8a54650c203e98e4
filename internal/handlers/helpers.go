package handlers

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	appmiddleware "github.com/anonto42/pulseblog/internal/middleware"
	"github.com/anonto42/pulseblog/internal/models"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// currentUser returns the identity resolved by the session middleware, or
// nil for anonymous requests
func currentUser(c echo.Context) *models.JwtCustomClaims {
	return appmiddleware.CurrentUser(c)
}

// getUserIDFromContext returns the current user ID, or 0 when anonymous
func getUserIDFromContext(c echo.Context) uint {
	if u := currentUser(c); u != nil {
		return u.UserID
	}
	return 0
}

// parseID parses a numeric path parameter
func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// saveUpload stores an optional multipart file under mediaRoot/subdir with a
// generated filename and returns the media-relative path. A missing file is
// not an error; the attachment is optional.
func saveUpload(c echo.Context, field, mediaRoot, subdir string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil || file == nil {
		return "", nil
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := uuid.New().String() + filepath.Ext(file.Filename)
	rel := filepath.Join(subdir, name)
	dst := filepath.Join(mediaRoot, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
