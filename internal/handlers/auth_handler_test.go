package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storehouse/internal/middleware"
	"storehouse/internal/models"
	"storehouse/internal/services"
)

type stubUserService struct {
	services.UserService

	signupRes *services.SignupResult
	signupErr error
	resendRes *services.IssueResult
	resendErr error
	gotEmail  string
}

func (s *stubUserService) SignUp(ctx context.Context, name, email, password string) (*services.SignupResult, error) {
	s.gotEmail = email
	return s.signupRes, s.signupErr
}

func (s *stubUserService) ResendVerification(ctx context.Context, email string) (*services.IssueResult, error) {
	s.gotEmail = email
	return s.resendRes, s.resendErr
}

type stubSessionService struct {
	services.SessionService

	loginRes   *services.LoginResult
	loginErr   error
	logoutErr  error
	gotSession string
}

func (s *stubSessionService) Login(email, password, userAgent, ip string) (*services.LoginResult, error) {
	return s.loginRes, s.loginErr
}

func (s *stubSessionService) Logout(sessionID string) error {
	s.gotSession = sessionID
	return s.logoutErr
}

func authRouter(users *stubUserService, sessions *stubSessionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(users, sessions)

	r := gin.New()
	r.POST("/signup", h.Signup)
	r.POST("/resend-verification", h.ResendVerification)
	r.POST("/login", h.Login)
	r.POST("/logout", func(c *gin.Context) {
		c.Set("session_id", c.GetHeader("X-Test-Session"))
		h.Logout(c)
	})
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSignup_Created(t *testing.T) {
	users := &stubUserService{signupRes: &services.SignupResult{
		UserID: 1,
		Issue:  &services.IssueResult{VerificationID: "ver123"},
	}}
	r := authRouter(users, &stubSessionService{})

	w := postJSON(r, "/signup", `{"name":"John","email":"John@Example.com","password":"secret1"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "ver123", data["id"])
	// email нормализуется до передачи в сервис
	assert.Equal(t, "john@example.com", users.gotEmail)
}

func TestSignup_CooldownWait(t *testing.T) {
	users := &stubUserService{signupRes: &services.SignupResult{
		UserID: 1,
		Issue:  &services.IssueResult{WaitMinutes: 7},
	}}
	r := authRouter(users, &stubSessionService{})

	w := postJSON(r, "/signup", `{"name":"John","email":"john@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(7), data["waitTime"])
}

func TestSignup_SendLimit(t *testing.T) {
	users := &stubUserService{signupRes: &services.SignupResult{
		UserID: 1,
		Issue:  &services.IssueResult{SendLimitReached: true},
	}}
	r := authRouter(users, &stubSessionService{})

	w := postJSON(r, "/signup", `{"name":"John","email":"john@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, true, data["emailSendLimit"])
}

func TestSignup_ExistingUser(t *testing.T) {
	users := &stubUserService{signupErr: services.ErrEmailTaken}
	r := authRouter(users, &stubSessionService{})

	w := postJSON(r, "/signup", `{"name":"John","email":"john@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "existing_user", decodeBody(t, w)["error"])
}

func TestSignup_EmailFailure(t *testing.T) {
	users := &stubUserService{signupErr: services.ErrEmailSend}
	r := authRouter(users, &stubSessionService{})

	w := postJSON(r, "/signup", `{"name":"John","email":"john@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "email_error", decodeBody(t, w)["error"])
}

func TestSignup_Validation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"short name", `{"name":"J","email":"john@example.com","password":"secret1"}`},
		{"bad email", `{"name":"John","email":"not-an-email","password":"secret1"}`},
		{"short password", `{"name":"John","email":"john@example.com","password":"12345"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := authRouter(&stubUserService{}, &stubSessionService{})
			w := postJSON(r, "/signup", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "validation_error", decodeBody(t, w)["error"])
		})
	}
}

func TestResendVerification(t *testing.T) {
	users := &stubUserService{resendRes: &services.IssueResult{VerificationID: "ver456"}}
	r := authRouter(users, &stubSessionService{})

	w := postJSON(r, "/resend-verification", `{"email":"john@example.com"}`)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]any)
	assert.Equal(t, "ver456", data["id"])
}

func TestLogin_SetsCookieAndReturnsToken(t *testing.T) {
	sessions := &stubSessionService{loginRes: &services.LoginResult{
		User:        &models.User{ID: 1, Email: "john@example.com"},
		Session:     &models.Session{ID: "sess1", UserID: 1},
		AccessToken: "jwt-token",
	}}
	r := authRouter(&stubUserService{}, sessions)

	w := postJSON(r, "/login", `{"email":"john@example.com","password":"secret1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	tokens := body["tokens"].(map[string]any)
	assert.Equal(t, "jwt-token", tokens["access_token"])

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.Equal(t, "jwt-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	sessions := &stubSessionService{loginErr: services.ErrInvalidCredentials}
	r := authRouter(&stubUserService{}, sessions)

	w := postJSON(r, "/login", `{"email":"john@example.com","password":"wrong1"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout(t *testing.T) {
	sessions := &stubSessionService{}
	r := authRouter(&stubUserService{}, sessions)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("X-Test-Session", "sess1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess1", sessions.gotSession)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.SessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}

func TestLogout_NoSession(t *testing.T) {
	r := authRouter(&stubUserService{}, &stubSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
