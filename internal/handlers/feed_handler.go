package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/pulseblog/internal/pagination"
	"github.com/anonto42/pulseblog/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FeedHandler serves the four paginated post feeds: global, by group, by
// author and by followed authors.
type FeedHandler struct {
	postRepository   repositories.PostRepository
	groupRepository  repositories.GroupRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	pager            *pagination.Pager
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(
	postRepo repositories.PostRepository,
	groupRepo repositories.GroupRepository,
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	pager *pagination.Pager,
) *FeedHandler {
	return &FeedHandler{
		postRepository:   postRepo,
		groupRepository:  groupRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
		pager:            pager,
	}
}

// RegisterFeedRoutes registers feed-related routes. The page cache wraps the
// global feed only.
func (h *FeedHandler) RegisterFeedRoutes(e *echo.Echo, requireLogin, pageCache echo.MiddlewareFunc) {
	e.GET("/", h.Index, pageCache)
	e.GET("/group/:slug/", h.GroupPosts)
	e.GET("/profile/:username/", h.Profile)
	e.GET("/follow/", h.FollowIndex, requireLogin)
}

// Index renders the global feed: every post, newest first
func (h *FeedHandler) Index(c echo.Context) error {
	total, err := h.postRepository.CountAllPosts()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	page := h.pager.Page(int(total), c.QueryParam("page"))

	posts, err := h.postRepository.GetAllPosts(page.Limit, page.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "index.html", echo.Map{
		"Title": "Latest updates",
		"Posts": posts,
		"Page":  page,
		"User":  currentUser(c),
	})
}

// GroupPosts renders one group's feed; unknown slugs are a 404
func (h *FeedHandler) GroupPosts(c echo.Context) error {
	group, err := h.groupRepository.GetGroupBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	total, err := h.postRepository.CountPostsByGroupID(group.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	page := h.pager.Page(int(total), c.QueryParam("page"))

	posts, err := h.postRepository.GetPostsByGroupID(group.ID, page.Limit, page.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "group_list.html", echo.Map{
		"Group": group,
		"Posts": posts,
		"Page":  page,
		"User":  currentUser(c),
	})
}

// Profile renders one author's feed; unknown usernames are a 404
func (h *FeedHandler) Profile(c echo.Context) error {
	author, err := h.userRepository.GetUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	total, err := h.postRepository.CountPostsByAuthorID(author.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	page := h.pager.Page(int(total), c.QueryParam("page"))

	posts, err := h.postRepository.GetPostsByAuthorID(author.ID, page.Limit, page.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	following := false
	if uid := getUserIDFromContext(c); uid != 0 {
		following, _ = h.followRepository.IsFollowing(uid, author.ID)
	}

	return c.Render(http.StatusOK, "profile.html", echo.Map{
		"Author":    author,
		"Posts":     posts,
		"Page":      page,
		"Following": following,
		"User":      currentUser(c),
	})
}

// FollowIndex renders the posts of every author the current user follows
func (h *FeedHandler) FollowIndex(c echo.Context) error {
	uid := getUserIDFromContext(c)

	total, err := h.postRepository.CountPostsByFollowedAuthors(uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	page := h.pager.Page(int(total), c.QueryParam("page"))

	posts, err := h.postRepository.GetPostsByFollowedAuthors(uid, page.Limit, page.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Render(http.StatusOK, "follow.html", echo.Map{
		"Title": "Your subscriptions",
		"Posts": posts,
		"Page":  page,
		"User":  currentUser(c),
	})
}
