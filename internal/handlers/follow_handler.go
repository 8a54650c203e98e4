package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/pulseblog/internal/models"
	"github.com/anonto42/pulseblog/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FollowHandler handles follow/unfollow HTTP requests. Both operations
// redirect to the followed feed without reporting whether the edge existed:
// a self-follow and a duplicate follow are silent no-ops, only an unknown
// author is an error.
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(e *echo.Echo, requireLogin echo.MiddlewareFunc) {
	e.GET("/profile/:username/follow/", h.ProfileFollow, requireLogin)
	e.POST("/profile/:username/follow/", h.ProfileFollow, requireLogin)
	e.GET("/profile/:username/unfollow/", h.ProfileUnfollow, requireLogin)
	e.POST("/profile/:username/unfollow/", h.ProfileUnfollow, requireLogin)
}

func (h *FollowHandler) loadAuthor(c echo.Context) (*models.User, error) {
	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return author, nil
}

// ProfileFollow follows an author. Following yourself or an already-followed
// author changes nothing.
func (h *FollowHandler) ProfileFollow(c echo.Context) error {
	author, err := h.loadAuthor(c)
	if err != nil {
		return err
	}

	uid := getUserIDFromContext(c)
	if uid != author.ID {
		follow := &models.Follow{UserID: uid, AuthorID: author.ID}
		if err := h.followRepository.CreateFollow(follow); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Redirect(http.StatusFound, "/follow/")
}

// ProfileUnfollow removes the follow edge if present
func (h *FollowHandler) ProfileUnfollow(c echo.Context) error {
	author, err := h.loadAuthor(c)
	if err != nil {
		return err
	}

	if err := h.followRepository.DeleteFollow(getUserIDFromContext(c), author.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, "/follow/")
}
