package handler

import (
	"errors"
	"log"
	"net/http"

	"planner/internal/auth"
	"planner/internal/config"
	"planner/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	auth         *service.AuthService
	jwtSecret    string
	cookieName   string
	cookieMaxAge int
}

func NewUserHandler(authService *service.AuthService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		auth:         authService,
		jwtSecret:    cfg.JWTSecret,
		cookieName:   cfg.SessionCookie,
		cookieMaxAge: cfg.JWTExpiryHours * 3600,
	}
}

type loginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type registerRequest struct {
	Username string `form:"username" binding:"required,min=3,max=20"`
	Email    string `form:"email" binding:"required,email"`
	Name     string `form:"name"`
	Surname  string `form:"surname"`
	Password string `form:"password" binding:"required,min=6"`
}

// Home renders the login page. A request that already carries a valid
// session goes straight to the calendar.
func (h *UserHandler) Home(c *gin.Context) {
	if cookie, err := c.Cookie(h.cookieName); err == nil && cookie != "" {
		if _, err := auth.ParseToken(h.jwtSecret, cookie); err == nil {
			c.Redirect(http.StatusFound, "/calendar")
			return
		}
	}

	c.HTML(http.StatusOK, "index.html", gin.H{"flash": popFlash(c)})
}

// Login handles the login form. On success a session cookie is set and the
// browser is redirected to the dashboard.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		setFlash(c, "error", "Wrong username or password")
		c.Redirect(http.StatusFound, "/")
		return
	}

	token, _, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			log.Printf("login failed: %v", err)
		}
		setFlash(c, "error", "Wrong username or password")
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.SetCookie(h.cookieName, token, h.cookieMaxAge, "/", "", false, true)
	setFlash(c, "success", "Logged in successfully")
	c.Redirect(http.StatusFound, "/dashboard")
}

// Register handles the registration form.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		setFlash(c, "error", "All required fields must be filled in")
		c.Redirect(http.StatusFound, "/")
		return
	}

	_, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Surname:  req.Surname,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, service.ErrDuplicateUser):
		setFlash(c, "error", "A user with that name or email already exists")
	case errors.Is(err, service.ErrValidation):
		setFlash(c, "error", "All required fields must be filled in")
	case err != nil:
		log.Printf("registration failed: %v", err)
		setFlash(c, "error", "Registration failed, try again later")
	default:
		setFlash(c, "success", "Account created, you can log in")
	}
	c.Redirect(http.StatusFound, "/")
}

// Logout clears the session cookie.
func (h *UserHandler) Logout(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	setFlash(c, "success", "You have been logged out")
	c.Redirect(http.StatusFound, "/")
}

// Profile renders the current user's profile page.
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"user":  user,
		"flash": popFlash(c),
	})
}
