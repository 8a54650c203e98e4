package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	appmiddleware "github.com/anonto42/pulseblog/internal/middleware"
	"golang.org/x/crypto/bcrypt"
)

func signupForm(username string) url.Values {
	return url.Values{
		"username": {username},
		"email":    {username + "@example.com"},
		"password": {"correct horse battery"},
	}
}

func TestSignup(t *testing.T) {
	e, store, _ := setupTestApp(t)

	rec := doPOST(t, e, "/auth/signup/", signupForm("leo"), nil)
	wantRedirect(t, rec, "/")

	user, err := store.GetUserByUsername("leo")
	if err != nil {
		t.Fatalf("signup did not create the user: %v", err)
	}
	if user.Password == "correct horse battery" {
		t.Fatalf("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("correct horse battery")) != nil {
		t.Fatalf("stored password hash does not verify")
	}
	if user.Profile.UserID != user.ID {
		t.Fatalf("signup did not create the profile row")
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	e, store, _ := setupTestApp(t)
	createUser(t, store, "leo")

	rec := doPOST(t, e, "/auth/signup/", signupForm("leo"), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 re-render", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "This username is taken") {
		t.Fatalf("re-rendered form is missing the duplicate-username error")
	}
	if len(store.Users) != 1 {
		t.Fatalf("duplicate signup created a second user")
	}
}

func TestSignupShortPassword(t *testing.T) {
	e, store, _ := setupTestApp(t)

	form := signupForm("leo")
	form.Set("password", "short")
	rec := doPOST(t, e, "/auth/signup/", form, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 re-render", rec.Code)
	}
	if len(store.Users) != 0 {
		t.Fatalf("invalid signup created a user")
	}
}

func TestLogin(t *testing.T) {
	e, _, _ := setupTestApp(t)

	wantRedirect(t, doPOST(t, e, "/auth/signup/", signupForm("leo"), nil), "/")

	form := url.Values{"username": {"leo"}, "password": {"correct horse battery"}}
	rec := doPOST(t, e, "/auth/login/", form, nil)
	wantRedirect(t, rec, "/")

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == appmiddleware.SessionCookieName {
			session = c
		}
	}
	if session == nil || session.Value == "" {
		t.Fatalf("login did not set the session cookie")
	}

	// the cookie authenticates a protected route
	rec = doGET(t, e, "/follow/", session)
	if rec.Code != http.StatusOK {
		t.Fatalf("followed feed status with session = %d, want 200", rec.Code)
	}
}

func TestLoginHonorsNext(t *testing.T) {
	e, _, _ := setupTestApp(t)
	wantRedirect(t, doPOST(t, e, "/auth/signup/", signupForm("leo"), nil), "/")

	form := url.Values{"username": {"leo"}, "password": {"correct horse battery"}}
	rec := doPOST(t, e, "/auth/login/?next=%2Fcreate%2F", form, nil)
	wantRedirect(t, rec, "/create/")
}

func TestLoginRejectsOffsiteNext(t *testing.T) {
	e, _, _ := setupTestApp(t)
	wantRedirect(t, doPOST(t, e, "/auth/signup/", signupForm("leo"), nil), "/")

	form := url.Values{"username": {"leo"}, "password": {"correct horse battery"}}
	rec := doPOST(t, e, "/auth/login/?next=%2F%2Fevil.example", form, nil)
	wantRedirect(t, rec, "/")
}

func TestLoginWrongPassword(t *testing.T) {
	e, _, _ := setupTestApp(t)
	wantRedirect(t, doPOST(t, e, "/auth/signup/", signupForm("leo"), nil), "/")

	form := url.Values{"username": {"leo"}, "password": {"not the password"}}
	rec := doPOST(t, e, "/auth/login/", form, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 re-render", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid username or password") {
		t.Fatalf("re-rendered form is missing the credentials error")
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == appmiddleware.SessionCookieName {
			t.Fatalf("failed login set a session cookie")
		}
	}
}

func TestLoginUnknownUser(t *testing.T) {
	e, _, _ := setupTestApp(t)

	form := url.Values{"username": {"ghost"}, "password": {"whatever"}}
	rec := doPOST(t, e, "/auth/login/", form, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Invalid username or password") {
		t.Fatalf("unknown user login status = %d", rec.Code)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	e, _, _ := setupTestApp(t)

	rec := doGET(t, e, "/auth/logout/", nil)
	wantRedirect(t, rec, "/")

	var session *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == appmiddleware.SessionCookieName {
			session = c
		}
	}
	if session == nil || session.MaxAge >= 0 || session.Value != "" {
		t.Fatalf("logout did not expire the session cookie: %+v", session)
	}
}

func TestProfileEdit(t *testing.T) {
	e, store, _ := setupTestApp(t)
	leo := createUser(t, store, "leo")

	rec := doPOST(t, e, "/auth/profile_edit/", url.Values{"bio": {"hello there"}}, sessionCookie(t, leo))
	wantRedirect(t, rec, "/")

	user, _ := store.GetUserByID(leo.ID)
	if user.Profile.Bio != "hello there" {
		t.Fatalf("bio = %q, want %q", user.Profile.Bio, "hello there")
	}
}

func TestProfileEditRequiresLogin(t *testing.T) {
	e, _, _ := setupTestApp(t)
	rec := doGET(t, e, "/auth/profile_edit/", nil)
	wantRedirect(t, rec, "/auth/login/?next=%2Fauth%2Fprofile_edit%2F")
}
