package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/liyunrui/meal-prep/config"
	"github.com/liyunrui/meal-prep/middlewares"
	"github.com/liyunrui/meal-prep/services"
	"github.com/liyunrui/meal-prep/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuthController struct {
	auth     *services.AuthService
	sessions services.SessionStore
	cfg      *config.Config
	logger   *logrus.Logger
}

func NewAuthController(auth *services.AuthService, sessions services.SessionStore, cfg *config.Config, logger *logrus.Logger) *AuthController {
	return &AuthController{auth: auth, sessions: sessions, cfg: cfg, logger: logger}
}

func (ac *AuthController) ShowRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"form": RegisterForm{}})
}

func (ac *AuthController) Register(c *gin.Context) {
	var form RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"errors": fieldErrors(err),
			"form":   form,
		})
		return
	}

	errs := make(map[string]string)
	taken, err := ac.auth.UsernameTaken(form.Username)
	if err != nil {
		ac.renderRegisterError(c, form, err)
		return
	}
	if taken {
		errs["username"] = "That username is taken. Please choose a different one."
	}
	taken, err = ac.auth.EmailTaken(form.Email)
	if err != nil {
		ac.renderRegisterError(c, form, err)
		return
	}
	if taken {
		errs["email"] = "That email is taken. Please choose a different one."
	}
	if len(errs) > 0 {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"errors": errs,
			"form":   form,
		})
		return
	}

	if _, err := ac.auth.Register(form.Username, form.Email, form.Password); err != nil {
		// Lost a race with a concurrent registration between the
		// validation check and the insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.HTML(http.StatusBadRequest, "register.html", gin.H{
				"errors": map[string]string{"form": "That username or email is already registered."},
				"form":   form,
			})
			return
		}
		ac.renderRegisterError(c, form, err)
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

func (ac *AuthController) renderRegisterError(c *gin.Context, form RegisterForm, err error) {
	ac.logger.WithError(err).Error("register user")
	c.HTML(http.StatusInternalServerError, "register.html", gin.H{
		"errors": map[string]string{"form": "Something went wrong. Please try again."},
		"form":   form,
	})
}

func (ac *AuthController) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"form": LoginForm{}})
}

func (ac *AuthController) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"errors": fieldErrors(err),
			"form":   form,
		})
		return
	}

	user, err := ac.auth.Authenticate(form.Email, form.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"errors": map[string]string{"form": "Login unsuccessful. Please check email and password."},
			"form":   form,
		})
		return
	}
	if err != nil {
		ac.logger.WithError(err).Error("authenticate user")
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"errors": map[string]string{"form": "Something went wrong. Please try again."},
			"form":   form,
		})
		return
	}

	sid, err := ac.sessions.Create(c.Request.Context(), user.ID, ac.cfg.Session.TTL())
	if err != nil {
		ac.logger.WithError(err).Error("create session")
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"errors": map[string]string{"form": "Something went wrong. Please try again."},
			"form":   form,
		})
		return
	}
	c.SetCookie(middlewares.SessionCookie, sid, int(ac.cfg.Session.TTL().Seconds()), "/", "", false, true)

	if form.Remember {
		tok, err := utils.GenerateRememberToken(ac.cfg.Session.Secret, user.ID, ac.cfg.Session.RememberTTL())
		if err != nil {
			ac.logger.WithError(err).Error("generate remember token")
		} else {
			c.SetCookie(middlewares.RememberCookie, tok, int(ac.cfg.Session.RememberTTL().Seconds()), "/", "", false, true)
		}
	}

	c.Redirect(http.StatusFound, safeNext(c.Query("next")))
}

// safeNext only honors local redirect targets.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

func (ac *AuthController) Logout(c *gin.Context) {
	if sid, err := c.Cookie(middlewares.SessionCookie); err == nil {
		if err := ac.sessions.Delete(c.Request.Context(), sid); err != nil {
			ac.logger.WithError(err).Warn("delete session")
		}
	}
	c.SetCookie(middlewares.SessionCookie, "", -1, "/", "", false, true)
	c.SetCookie(middlewares.RememberCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}
