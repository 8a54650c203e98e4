package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/anonto42/pulseblog/internal/models"
	"github.com/anonto42/pulseblog/internal/repositories"
	"github.com/anonto42/pulseblog/validators"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(e *echo.Echo, requireLogin echo.MiddlewareFunc) {
	e.GET("/posts/:id/comment/", h.AddComment, requireLogin)
	e.POST("/posts/:id/comment/", h.AddComment, requireLogin)
	e.GET("/posts/edit_comment/:id/", h.EditComment, requireLogin)
	e.POST("/posts/edit_comment/:id/", h.EditComment, requireLogin)
	e.GET("/posts/del_comment/:id/", h.DelComment, requireLogin)
	e.POST("/posts/del_comment/:id/", h.DelComment, requireLogin)
}

func (h *CommentHandler) loadComment(c echo.Context) (*models.Comment, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	comment, err := h.commentRepository.GetCommentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return comment, nil
}

func postDetailURL(postID uint) string {
	return fmt.Sprintf("/posts/%d/", postID)
}

// AddComment submits the comment form on a post's detail page. An invalid
// submission re-renders the detail page with the field errors; nothing is
// persisted.
func (h *CommentHandler) AddComment(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if c.Request().Method != http.MethodPost {
		// the form lives on the detail page
		return c.Redirect(http.StatusFound, postDetailURL(post.ID))
	}

	var form models.CommentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "post_detail.html", echo.Map{
			"Post":   post,
			"Form":   form,
			"Errors": validators.FieldErrors(err),
			"User":   currentUser(c),
		})
	}

	comment := &models.Comment{
		Text:     form.Text,
		PostID:   post.ID,
		AuthorID: getUserIDFromContext(c),
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, postDetailURL(post.ID))
}

// EditComment renders and handles the comment edit form. Only the author may
// edit; anyone else is sent to the parent post's read view.
func (h *CommentHandler) EditComment(c echo.Context) error {
	comment, err := h.loadComment(c)
	if err != nil {
		return err
	}

	if comment.AuthorID != getUserIDFromContext(c) {
		return c.Redirect(http.StatusFound, postDetailURL(comment.PostID))
	}

	if c.Request().Method != http.MethodPost {
		return c.Render(http.StatusOK, "edit_comment.html", echo.Map{
			"Form":   models.CommentForm{Text: comment.Text},
			"Errors": map[string]string{},
			"User":   currentUser(c),
		})
	}

	var form models.CommentForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form payload")
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "edit_comment.html", echo.Map{
			"Form":   form,
			"Errors": validators.FieldErrors(err),
			"User":   currentUser(c),
		})
	}

	comment.Text = form.Text
	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, postDetailURL(comment.PostID))
}

// DelComment deletes a comment. Only the author may delete; anyone else is
// sent to the parent post's read view.
func (h *CommentHandler) DelComment(c echo.Context) error {
	comment, err := h.loadComment(c)
	if err != nil {
		return err
	}

	if comment.AuthorID != getUserIDFromContext(c) {
		return c.Redirect(http.StatusFound, postDetailURL(comment.PostID))
	}

	if err := h.commentRepository.DeleteComment(comment.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.Redirect(http.StatusFound, postDetailURL(comment.PostID))
}
