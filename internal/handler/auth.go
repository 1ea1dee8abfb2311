package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/navidsh/marketplace-api/internal/config"
	"github.com/navidsh/marketplace-api/internal/middleware"
	"github.com/navidsh/marketplace-api/internal/service"
	"github.com/navidsh/marketplace-api/internal/utils"
)

// AuthHandler bundles dependencies for the register/login/logout/self
// endpoints.  Successful register and login set the session cookie.
type AuthHandler struct {
	Cfg   config.Config
	Users *service.UserService
}

func NewAuthHandler(cfg config.Config, users *service.UserService) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"` // buyer | seller | admin
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// setSessionCookie writes the httpOnly session cookie.  Logout reuses it
// with an empty value and an expiry in the past, which is how the
// credential is invalidated on the client side.
func setSessionCookie(c echo.Context, token string, exp time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Expires:  exp,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register creates the account and logs the user in immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.Register(ctx, service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return writeError(c, err)
	}
	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, string(u.Role), h.Cfg.TokenTTLHours)
	if err != nil {
		return writeError(c, err)
	}
	setSessionCookie(c, tok.Token, tok.Exp)
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "user registered successfully",
		"user":    u,
		"token":   tok.Token,
	})
}

// Login verifies credentials and issues a fresh session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, string(u.Role), h.Cfg.TokenTTLHours)
	if err != nil {
		return writeError(c, err)
	}
	setSessionCookie(c, tok.Token, tok.Exp)
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "user logged in successfully",
		"user":    u,
		"token":   tok.Token,
	})
}

// Logout replaces the session cookie with an already-expired one.
func (h *AuthHandler) Logout(c echo.Context) error {
	setSessionCookie(c, "", time.Now().UTC())
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "logged out successfully",
	})
}

// Me returns the authenticated user's own profile.
func (h *AuthHandler) Me(c echo.Context) error {
	caller, err := getCaller(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.Get(ctx, caller.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "user": u})
}
