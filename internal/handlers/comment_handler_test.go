package handlers_test

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestAddComment(t *testing.T) {
	e, store, _ := setupTestApp(t)
	leo := createUser(t, store, "leo")
	mia := createUser(t, store, "mia")
	post := createPost(t, store, leo, "a post", nil, time.Now())
	detailURL := fmt.Sprintf("/posts/%d/", post.ID)

	rec := doPOST(t, e, detailURL+"comment/", url.Values{"text": {"nice one"}}, sessionCookie(t, mia))
	wantRedirect(t, rec, detailURL)

	if len(store.Comments) != 1 {
		t.Fatalf("expected 1 comment, have %d", len(store.Comments))
	}
	for _, c := range store.Comments {
		if c.Text != "nice one" || c.AuthorID != mia.ID || c.PostID != post.ID {
			t.Fatalf("stored comment = %+v", c)
		}
	}

	// the comment renders on the detail page
	body := doGET(t, e, detailURL, nil).Body.String()
	if !strings.Contains(body, "nice one") {
		t.Fatalf("detail page is missing the comment")
	}
}

func TestAddCommentRequiresLogin(t *testing.T) {
	e, store, _ := setupTestApp(t)
	leo := createUser(t, store, "leo")
	post := createPost(t, store, leo, "a post", nil, time.Now())

	path := fmt.Sprintf("/posts/%d/comment/", post.ID)
	rec := doPOST(t, e, path, url.Values{"text": {"anon"}}, nil)
	wantRedirect(t, rec, "/auth/login/?next="+url.QueryEscape(path))
	if len(store.Comments) != 0 {
		t.Fatalf("anonymous comment persisted")
	}
}

func TestAddCommentEmptyTextRerenders(t *testing.T) {
	e, store, _ := setupTestApp(t)
	leo := createUser(t, store, "leo")
	post := createPost(t, store, leo, "a post", nil, time.Now())

	rec := doPOST(t, e, fmt.Sprintf("/posts/%d/comment/", post.ID), url.Values{"text": {""}}, sessionCookie(t, leo))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 re-render", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "This field is required") {
		t.Fatalf("re-rendered page is missing the field error")
	}
	if len(store.Comments) != 0 {
		t.Fatalf("invalid comment persisted")
	}
}

func TestAddCommentUnknownPost(t *testing.T) {
	e, store, _ := setupTestApp(t)
	leo := createUser(t, store, "leo")

	rec := doPOST(t, e, "/posts/999/comment/", url.Values{"text": {"lost"}}, sessionCookie(t, leo))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestEditComment(t *testing.T) {
	e, store, _ := setupTestApp(t)
	leo := createUser(t, store, "leo")
	mia := createUser(t, store, "mia")
	post := createPost(t, store, leo, "a post", nil, time.Now())
	detailURL := fmt.Sprintf("/posts/%d/", post.ID)

	wantRedirect(t, doPOST(t, e, detailURL+"comment/", url.Values{"text": {"draft"}}, sessionCookie(t, mia)), detailURL)

	var commentID uint
	for id := range store.Comments {
		commentID = id
	}
	editURL := fmt.Sprintf("/posts/edit_comment/%d/", commentID)

	// a stranger is bounced to the parent post
	wantRedirect(t, doPOST(t, e, editURL, url.Values{"text": {"hijacked"}}, sessionCookie(t, leo)), detailURL)
	if store.Comments[commentID].Text != "draft" {
		t.Fatalf("stranger edit changed the comment")
	}

	// the author edits
	wantRedirect(t, doPOST(t, e, editURL, url.Values{"text": {"final"}}, sessionCookie(t, mia)), detailURL)
	if store.Comments[commentID].Text != "final" {
		t.Fatalf("author edit did not stick: %q", store.Comments[commentID].Text)
	}
}

func TestDeleteComment(t *testing.T) {
	e, store, _ := setupTestApp(t)
	leo := createUser(t, store, "leo")
	mia := createUser(t, store, "mia")
	post := createPost(t, store, leo, "a post", nil, time.Now())
	detailURL := fmt.Sprintf("/posts/%d/", post.ID)

	wantRedirect(t, doPOST(t, e, detailURL+"comment/", url.Values{"text": {"first"}}, sessionCookie(t, mia)), detailURL)
	wantRedirect(t, doPOST(t, e, detailURL+"comment/", url.Values{"text": {"second"}}, sessionCookie(t, mia)), detailURL)

	var firstID uint
	for id, c := range store.Comments {
		if c.Text == "first" {
			firstID = id
		}
	}
	delURL := fmt.Sprintf("/posts/del_comment/%d/", firstID)

	// a stranger cannot delete
	wantRedirect(t, doGET(t, e, delURL, sessionCookie(t, leo)), detailURL)
	if len(store.Comments) != 2 {
		t.Fatalf("stranger deletion removed a comment")
	}

	// the author deletes; the sibling and the post survive
	wantRedirect(t, doGET(t, e, delURL, sessionCookie(t, mia)), detailURL)
	if len(store.Comments) != 1 {
		t.Fatalf("expected 1 surviving comment, have %d", len(store.Comments))
	}
	for _, c := range store.Comments {
		if c.Text != "second" {
			t.Fatalf("wrong comment survived: %q", c.Text)
		}
	}
	if len(store.Posts) != 1 {
		t.Fatalf("comment deletion removed the parent post")
	}
}
