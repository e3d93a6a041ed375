package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compassreads/compass-server/internal/ratelimit"
)

func TestRegister_Success(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"email":    "reader@example.com",
		"password": "Abcdef1!",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]string
	decodeBody(t, rec, &body)
	assert.Equal(t, "User registered successfully", body["message"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"email":    "reader@example.com",
		"password": "Abcdef1!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"email":    "reader@example.com",
		"password": "Abcdef1!",
	})

	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]any
	decodeBody(t, rec, &body)
	assert.Equal(t, "Email already exists", body["message"])
}

func TestRegister_ValidationErrors(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name        string
		body        map[string]string
		wantMessage string
	}{
		{
			name:        "missing fields",
			body:        map[string]string{},
			wantMessage: "Please provide an email and a password.",
		},
		{
			name:        "bad email",
			body:        map[string]string{"email": "not-an-email", "password": "Abcdef1!"},
			wantMessage: "Please enter a valid email address.",
		},
		{
			name:        "weak password",
			body:        map[string]string{"email": "a@b.co", "password": "abc"},
			wantMessage: "Password validation failed.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/users/register", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]any
			decodeBody(t, rec, &body)
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}

func TestRegister_WeakPasswordListsRules(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"email":    "a@b.co",
		"password": "abc",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Message string   `json:"message"`
		Errors  []string `json:"errors"`
	}
	decodeBody(t, rec, &body)
	// "abc" has a lowercase letter, so the other four rules fail.
	assert.Len(t, body.Errors, 4)
}

func TestLogin_SetsSessionCookie(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"email":    "reader@example.com",
		"password": "Abcdef1!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/users/login", map[string]string{
		"email":    "reader@example.com",
		"password": "Abcdef1!",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	cookie := sessionCookie(t, rec)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	var body struct {
		Message string `json:"message"`
		User    struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "Authentication successful", body.Message)
	assert.Equal(t, "reader@example.com", body.User.Email)
	assert.Positive(t, body.User.ID)
}

func TestLogin_BadCredentials(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/users/register", map[string]string{
		"email":    "reader@example.com",
		"password": "Abcdef1!",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, body := range []map[string]string{
		{"email": "nobody@example.com", "password": "Abcdef1!"},
		{"email": "reader@example.com", "password": "WrongPass1!"},
	} {
		rec := ts.do(t, http.MethodPost, "/api/users/login", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp map[string]any
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Invalid email or password", resp["message"])
	}
}

func TestCheckSession_Lifecycle(t *testing.T) {
	ts := setupTestServer(t)

	// Anonymous request reads as logged out.
	rec := ts.do(t, http.MethodGet, "/api/users/checksession", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var check struct {
		IsLoggedIn bool `json:"isLoggedIn"`
		User       *struct {
			ID int64 `json:"id"`
		} `json:"user"`
	}
	decodeBody(t, rec, &check)
	assert.False(t, check.IsLoggedIn)
	assert.Nil(t, check.User)

	cookie := ts.register(t, "reader@example.com", "Abcdef1!")

	rec = ts.do(t, http.MethodGet, "/api/users/checksession", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &check)
	assert.True(t, check.IsLoggedIn)
	require.NotNil(t, check.User)
	assert.Positive(t, check.User.ID)

	// Logout ends the session and expires the cookie.
	rec = ts.do(t, http.MethodPost, "/api/users/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := sessionCookie(t, rec)
	assert.Negative(t, cleared.MaxAge)

	rec = ts.do(t, http.MethodGet, "/api/users/checksession", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	check.User = nil
	decodeBody(t, rec, &check)
	assert.False(t, check.IsLoggedIn)
}

func TestCheckSession_TamperedCookie(t *testing.T) {
	ts := setupTestServer(t)

	cookie := ts.register(t, "reader@example.com", "Abcdef1!")
	cookie.Value = cookie.Value[:len(cookie.Value)-4] + "AAAA"

	rec := ts.do(t, http.MethodGet, "/api/users/checksession", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var check struct {
		IsLoggedIn bool `json:"isLoggedIn"`
	}
	decodeBody(t, rec, &check)
	assert.False(t, check.IsLoggedIn)
}

func TestLogin_RateLimited(t *testing.T) {
	ts := setupTestServerWithLimiter(t, ratelimit.New(2, time.Minute, 2))

	body := map[string]string{"email": "reader@example.com", "password": "Abcdef1!"}
	for range 2 {
		rec := ts.do(t, http.MethodPost, "/api/users/login", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec := ts.do(t, http.MethodPost, "/api/users/login", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
