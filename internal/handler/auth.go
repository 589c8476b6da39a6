package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-analytics/internal/config"
	"github.com/iliyamo/movie-analytics/internal/logger"
	"github.com/iliyamo/movie-analytics/internal/utils"
)

// adminUserID is the subject of tokens issued to the operator account.
const adminUserID = 1

// AuthHandler logs in the single operator account configured through
// ADMIN_EMAIL and ADMIN_PASSWORD_HASH.
type AuthHandler struct {
	Cfg config.Config
	Log *logger.Logger
}

func NewAuthHandler(cfg config.Config, log *logger.Logger) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Log: log}
}

type loginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type loginResp struct {
	Role   string    `json:"role"`
	Access tokenPart `json:"access"`
}

// Login checks the credentials and returns an ADMIN access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	if h.Cfg.AdminEmail == "" || h.Cfg.AdminPasswordHash == "" {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "login disabled"})
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.Cfg.AdminEmail)) == 1
	// bcrypt runs even when the email is wrong
	passOK := utils.VerifyPassword(h.Cfg.AdminPasswordHash, req.Password)
	if !emailOK || !passOK {
		h.Log.Warn("login rejected", "email", req.Email, "ip", c.RealIP())
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	at, err := utils.NewAccessToken(h.Cfg.JWTSecret, adminUserID, "ADMIN", h.Cfg.AccessTTLMin)
	if err != nil {
		h.Log.Error("sign access token failed", "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}
	return c.JSON(http.StatusOK, loginResp{
		Role:   "ADMIN",
		Access: tokenPart{Token: at.Token, Expires: at.Exp},
	})
}
