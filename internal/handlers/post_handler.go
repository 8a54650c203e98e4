package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/anonto42/pulseblog/internal/models"
	"github.com/anonto42/pulseblog/internal/repositories"
	"github.com/anonto42/pulseblog/validators"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository  repositories.PostRepository
	groupRepository repositories.GroupRepository
	mediaRoot       string
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, groupRepo repositories.GroupRepository, mediaRoot string) *PostHandler {
	return &PostHandler{
		postRepository:  postRepo,
		groupRepository: groupRepo,
		mediaRoot:       mediaRoot,
	}
}

// RegisterPostRoutes registers post-related routes. Form routes accept GET
// to render the form and POST to submit it.
func (h *PostHandler) RegisterPostRoutes(e *echo.Echo, requireLogin echo.MiddlewareFunc) {
	e.GET("/posts/:id/", h.PostDetail)
	e.GET("/create/", h.PostCreate, requireLogin)
	e.POST("/create/", h.PostCreate, requireLogin)
	e.GET("/posts/:id/edit/", h.PostEdit, requireLogin)
	e.POST("/posts/:id/edit/", h.PostEdit, requireLogin)
	e.GET("/posts/:id/del/", h.PostDelete, requireLogin)
	e.POST("/posts/:id/del/", h.PostDelete, requireLogin)
}

func (h *PostHandler) loadPost(c echo.Context) (*models.Post, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return post, nil
}

// PostDetail renders a post with its comments and the comment form
func (h *PostHandler) PostDetail(c echo.Context) error {
	post, err := h.loadPost(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "post_detail.html", echo.Map{
		"Post":   post,
		"Form":   models.CommentForm{},
		"Errors": map[string]string{},
		"User":   currentUser(c),
	})
}

func (h *PostHandler) renderPostForm(c echo.Context, title string, form models.PostForm, fieldErrors map[string]string, isEdit bool) error {
	groups, err := h.groupRepository.GetGroups()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.Render(http.StatusOK, "create_post.html", echo.Map{
		"Title":  title,
		"Form":   form,
		"Errors": fieldErrors,
		"Groups": groups,
		"IsEdit": isEdit,
		"User":   currentUser(c),
	})
}

// groupID resolves the optional group selector value
func groupID(form models.PostForm) *uint {
	if form.Group == "" {
		return nil
	}
	id, err := strconv.ParseUint(form.Group, 10, 32)
	if err != nil {
		return nil
	}
	gid := uint(id)
	return &gid
}

// PostCreate renders and handles the new-post form. Success redirects to the
// creating author's profile feed.
func (h *PostHandler) PostCreate(c echo.Context) error {
	user := currentUser(c)

	if c.Request().Method != http.MethodPost {
		return h.renderPostForm(c, "New post", models.PostForm{}, map[string]string{}, false)
	}

	var form models.PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderPostForm(c, "New post", form, validators.FieldErrors(err), false)
	}

	image, err := saveUpload(c, "image", h.mediaRoot, "posts")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post := &models.Post{
		Text:     form.Text,
		GroupID:  groupID(form),
		AuthorID: user.UserID,
		Image:    image,
	}
	if err := h.postRepository.CreatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

// PostEdit renders and handles the edit form. Only the author may edit;
// anyone else is sent to the post's read view.
func (h *PostHandler) PostEdit(c echo.Context) error {
	post, err := h.loadPost(c)
	if err != nil {
		return err
	}

	detailURL := fmt.Sprintf("/posts/%d/", post.ID)
	if post.AuthorID != getUserIDFromContext(c) {
		return c.Redirect(http.StatusFound, detailURL)
	}

	if c.Request().Method != http.MethodPost {
		form := models.PostForm{Text: post.Text}
		if post.GroupID != nil {
			form.Group = strconv.FormatUint(uint64(*post.GroupID), 10)
		}
		return h.renderPostForm(c, "Edit post", form, map[string]string{}, true)
	}

	var form models.PostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return h.renderPostForm(c, "Edit post", form, validators.FieldErrors(err), true)
	}

	image, err := saveUpload(c, "image", h.mediaRoot, "posts")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	post.Text = form.Text
	post.GroupID = groupID(form)
	if image != "" {
		post.Image = image
	}
	if err := h.postRepository.UpdatePost(post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, detailURL)
}

// PostDelete deletes a post. Only the author may delete; anyone else is sent
// back to the global feed. Comments go with the post.
func (h *PostHandler) PostDelete(c echo.Context) error {
	post, err := h.loadPost(c)
	if err != nil {
		return err
	}

	if post.AuthorID != getUserIDFromContext(c) {
		return c.Redirect(http.StatusFound, "/")
	}

	if err := h.postRepository.DeletePost(post.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, "/")
}
