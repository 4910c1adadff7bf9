package handlers

import (
	"expvar"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/go-user-registration/internal/application"
	"github.com/oksasatya/go-user-registration/internal/domain/entity"
	"github.com/oksasatya/go-user-registration/internal/domain/repository"
	"github.com/oksasatya/go-user-registration/internal/interface/middleware"
	"github.com/oksasatya/go-user-registration/pkg/helpers"
)

// registration counters, served by /api/debug/vars
var registrationStats = expvar.NewMap("registration")

type RegisterHandler struct {
	Svc     *userapp.Service
	Flash   repository.FlashRepository
	Logger  *logrus.Logger
	AppName string
}

func NewRegisterHandler(svc *userapp.Service, flash repository.FlashRepository, logger *logrus.Logger, appName string) *RegisterHandler {
	return &RegisterHandler{Svc: svc, Flash: flash, Logger: logger, AppName: appName}
}

type registerForm struct {
	Username   string `form:"username"`
	Password   string `form:"new-password"`
	RePassword string `form:"re-password"`
	FirstName  string `form:"first_name"`
	LastName   string `form:"last_name"`
	Email      string `form:"e-mail"`
}

func (f registerForm) input() userapp.RegistrationInput {
	return userapp.RegistrationInput{
		Username:   f.Username,
		Password:   f.Password,
		RePassword: f.RePassword,
		Email:      f.Email,
		FirstName:  f.FirstName,
		LastName:   f.LastName,
	}
}

// Home renders the landing page.
func (h *RegisterHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"AppName": h.AppName})
}

// ShowRegister renders the form, consuming this session's flash if any.
func (h *RegisterHandler) ShowRegister(c *gin.Context) {
	model := gin.H{"Failed": false, "Username": ""}
	if sid := middleware.SessionID(c); sid != "" {
		f, ok, err := h.Flash.Pop(c.Request.Context(), sid)
		if err != nil {
			helpers.LogWarn(h.Logger, "read register flash failed", err, h.fields(c))
		}
		if ok && f.Status {
			model["Failed"] = true
			model["Username"] = f.Username
		}
	}
	c.HTML(http.StatusOK, "register.html", model)
}

// Register handles the form post. Every failure collapses into the same
// flash and a redirect back to the form.
func (h *RegisterHandler) Register(c *gin.Context) {
	registrationStats.Add("attempts", 1)

	var form registerForm
	if err := c.ShouldBind(&form); err != nil {
		h.fail(c, form.Username, "invalid_form", err)
		return
	}
	if form.Password != form.RePassword {
		h.fail(c, form.Username, userapp.Outcome(userapp.ErrNotMatchingPasswords), nil)
		return
	}

	u, err := h.Svc.CreateUser(c.Request.Context(), form.input())
	if err != nil {
		h.fail(c, form.Username, userapp.Outcome(err), err)
		return
	}

	h.putFlash(c, entity.RegisterFlash{Status: false})
	registrationStats.Add("succeeded", 1)
	fields := h.fields(c)
	fields["user_id"] = u.ID
	helpers.LogInfo(h.Logger, "registration succeeded", fields)
	c.Redirect(http.StatusFound, "/")
}

func (h *RegisterHandler) fail(c *gin.Context, username, reason string, err error) {
	registrationStats.Add("failed", 1)
	fields := h.fields(c)
	fields["reason"] = reason
	fields["username"] = username
	if k, ok := userapp.KindOf(err); ok {
		fields["kind"] = string(k)
	}
	helpers.LogWarn(h.Logger, "registration failed", err, fields)

	h.putFlash(c, entity.RegisterFlash{Status: true, Username: username})
	c.Redirect(http.StatusFound, "/register")
}

func (h *RegisterHandler) putFlash(c *gin.Context, f entity.RegisterFlash) {
	sid := middleware.SessionID(c)
	if sid == "" {
		return
	}
	if err := h.Flash.Put(c.Request.Context(), sid, f); err != nil {
		helpers.LogWarn(h.Logger, "store register flash failed", err, h.fields(c))
	}
}

func (h *RegisterHandler) fields(c *gin.Context) logrus.Fields {
	return logrus.Fields{
		"request_id": c.GetString(middleware.CtxRequestIDKey),
		"client_ip":  c.GetString(middleware.CtxRealIPKey),
	}
}
