package handlers

import (
	"context"
	"encoding/json"
	"expvar"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	userapp "github.com/oksasatya/go-user-registration/internal/application"
	"github.com/oksasatya/go-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-user-registration/internal/domain/repository"
	"github.com/oksasatya/go-user-registration/internal/domain/repository/mocks"
	"github.com/oksasatya/go-user-registration/internal/infrastructure/memory"
	"github.com/oksasatya/go-user-registration/internal/interface/http/views"
	"github.com/oksasatya/go-user-registration/internal/interface/middleware"
	"github.com/oksasatya/go-user-registration/pkg/helpers"
	"github.com/oksasatya/go-user-registration/pkg/validation"
)

const failureNotice = "Registration failed"

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

func newTestEngine(t *testing.T, repo repository.UserRepository) (*gin.Engine, *userapp.Service) {
	t.Helper()
	tpl, err := views.Load()
	require.NoError(t, err)

	svc := userapp.NewService(repo, nil, nil, nil, nil)
	reg := NewRegisterHandler(svc, memory.NewFlashStore(time.Minute), nil, "Test App")
	users := NewUserHandler(svc, nil)

	r := gin.New()
	r.SetHTMLTemplate(tpl)
	r.Use(middleware.RequestIDMiddleware(), middleware.RealIP(), middleware.Session("sid", helpers.NewCookie("", false)))
	r.GET("/", reg.Home)
	r.GET("/register", reg.ShowRegister)
	r.POST("/register", reg.Register)
	r.GET("/api/users/search", users.Search)
	r.GET("/api/users/:id", users.GetUser)
	return r, svc
}

// browser keeps the session cookie between requests.
type browser struct {
	engine *gin.Engine
	cookie *http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.engine.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == "sid" {
			b.cookie = c
		}
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func validForm() url.Values {
	return url.Values{
		"username":     {"user"},
		"new-password": {"123456"},
		"re-password":  {"123456"},
		"first_name":   {"fName"},
		"last_name":    {"lName"},
		"e-mail":       {"users@domain.com"},
	}
}

func counter(name string) int64 {
	if v, ok := registrationStats.Get(name).(*expvar.Int); ok {
		return v.Value()
	}
	return 0
}

type RegisterHandlerSuite struct {
	suite.Suite
	repo   *memory.UserRepository
	engine *gin.Engine
}

func TestRegisterHandlerSuite(t *testing.T) {
	suite.Run(t, new(RegisterHandlerSuite))
}

func (s *RegisterHandlerSuite) SetupTest() {
	s.repo = memory.NewUserRepository()
	s.engine, _ = newTestEngine(s.T(), s.repo)
}

func (s *RegisterHandlerSuite) browser() *browser {
	return &browser{engine: s.engine}
}

func (s *RegisterHandlerSuite) TestHome() {
	w := s.browser().get("/")
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Test App")
}

func (s *RegisterHandlerSuite) TestSuccessRedirectsHome() {
	b := s.browser()
	attempts, succeeded := counter("attempts"), counter("succeeded")

	w := b.post(validForm())
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/", w.Header().Get("Location"))

	u, err := s.repo.FindByUsername(context.Background(), "user")
	s.Require().NoError(err)
	s.Equal("users@domain.com", u.Email)
	s.Equal("fName", u.FirstName)
	s.Equal("lName", u.LastName)
	s.Equal("123456", u.Password)

	page := b.get("/register")
	s.Equal(http.StatusOK, page.Code)
	s.NotContains(page.Body.String(), failureNotice)

	s.Equal(attempts+1, counter("attempts"))
	s.Equal(succeeded+1, counter("succeeded"))
}

func (s *RegisterHandlerSuite) TestPasswordMismatchSkipsCore() {
	b := s.browser()
	form := validForm()
	form.Set("re-password", "654321")

	w := b.post(form)
	s.Equal(http.StatusFound, w.Code)
	s.Equal("/register", w.Header().Get("Location"))

	_, err := s.repo.FindByUsername(context.Background(), "user")
	s.ErrorIs(err, repository.ErrNotFound)

	page := b.get("/register")
	s.Contains(page.Body.String(), failureNotice)
	s.Contains(page.Body.String(), "<strong>user</strong>")
}

func (s *RegisterHandlerSuite) TestValidationFailureRedirectsBack() {
	tests := map[string]func(url.Values){
		"empty username": func(f url.Values) { f.Set("username", "") },
		"short password": func(f url.Values) { f.Set("new-password", "123"); f.Set("re-password", "123") },
		"invalid email":  func(f url.Values) { f.Set("e-mail", "userdomain.com") },
		"empty email":    func(f url.Values) { f.Del("e-mail") },
	}
	for name, mutate := range tests {
		s.Run(name, func() {
			b := s.browser()
			failed := counter("failed")
			form := validForm()
			mutate(form)

			w := b.post(form)
			s.Equal(http.StatusFound, w.Code)
			s.Equal("/register", w.Header().Get("Location"))
			s.Equal(failed+1, counter("failed"))
			s.Contains(b.get("/register").Body.String(), failureNotice)
		})
	}
}

func (s *RegisterHandlerSuite) TestExistingUserRedirectsBack() {
	s.Equal("/", s.browser().post(validForm()).Header().Get("Location"))

	b := s.browser()
	form := validForm()
	form.Set("e-mail", "other@domain.com")
	w := b.post(form)
	s.Equal("/register", w.Header().Get("Location"))
	s.Contains(b.get("/register").Body.String(), failureNotice)
}

func (s *RegisterHandlerSuite) TestFlashIsShownOnce() {
	b := s.browser()
	form := validForm()
	form.Set("username", "")
	b.post(form)

	s.Contains(b.get("/register").Body.String(), failureNotice)
	s.NotContains(b.get("/register").Body.String(), failureNotice)
}

func (s *RegisterHandlerSuite) TestFlashDoesNotLeakAcrossSessions() {
	a, other := s.browser(), s.browser()
	other.get("/register")

	form := validForm()
	form.Set("username", "")
	a.post(form)

	s.NotContains(other.get("/register").Body.String(), failureNotice)
	s.Contains(a.get("/register").Body.String(), failureNotice)
}

func TestRegisterDuplicateFromStorage(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUserRepository(ctrl)
	repo.EXPECT().GetAllUsernames(gomock.Any()).Return([]string{}, nil)
	repo.EXPECT().GetAllEmails(gomock.Any()).Return([]*entity.User{}, nil)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(repository.ErrDuplicateEmail).Times(1)

	engine, _ := newTestEngine(t, repo)
	b := &browser{engine: engine}

	w := b.post(validForm())
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/register", w.Header().Get("Location"))
	assert.Contains(t, b.get("/register").Body.String(), failureNotice)
}

func TestGetUserEndpoint(t *testing.T) {
	repo := memory.NewUserRepository()
	engine, svc := newTestEngine(t, repo)
	u, err := svc.CreateUser(context.Background(), userapp.RegistrationInput{
		Username: "ann", Password: "secret1", RePassword: "secret1", Email: "ann@domain.com",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/"+u.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "ann", body.Data["username"])
	assert.NotContains(t, body.Data, "password")
	assert.NotContains(t, w.Body.String(), "secret1")

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}

func TestSearchEndpoint(t *testing.T) {
	engine, _ := newTestEngine(t, memory.NewUserRepository())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/search", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"q":"is required"`)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/search?q=ann&size=99", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/search?q=ann", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":0`)
}
