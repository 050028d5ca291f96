package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/police-1111/cmf/internal/auth"
	"github.com/police-1111/cmf/internal/auth/provider"
	"github.com/police-1111/cmf/internal/logger"
	"github.com/police-1111/cmf/internal/middleware"
	"github.com/police-1111/cmf/internal/session"
)

const (
	landingPath = "/index.html"
	homePath    = "/"

	sessionTTL = 24 * time.Hour
)

// Handler drives the OAuth redirect dance: initiate, provider
// callback, logout. The allow-list decision happens here exactly once
// per login; the gate repeats it on every later request.
type Handler struct {
	providers    *provider.Registry
	sessionStore session.Store
	allow        *auth.AllowList
	codec        *session.Codec
	secureCookie bool
}

func NewHandler(
	registry *provider.Registry,
	sessionStore session.Store,
	allow *auth.AllowList,
	codec *session.Codec,
	secureCookie bool,
) *Handler {
	return &Handler{
		providers:    registry,
		sessionStore: sessionStore,
		allow:        allow,
		codec:        codec,
		secureCookie: secureCookie,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/auth/:provider", h.login)
	r.GET("/auth/:provider/callback", h.callback)
	r.GET("/logout", h.Logout)
}

func (h *Handler) login(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.Redirect(http.StatusFound, middleware.DeniedPath)
		return
	}

	state := generateState(c)
	_, codeChallenge := generatePKCE(c)

	authURL := p.AuthCodeURL(state, codeChallenge)
	c.Redirect(http.StatusFound, authURL)
}

func (h *Handler) callback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		h.denied(c)
		return
	}

	if !validateState(c) {
		logger.Warn("oauth callback state mismatch", map[string]any{
			"provider": providerName,
		})
		h.denied(c)
		return
	}

	// Provider-reported errors (user cancelled consent, etc.)
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		h.denied(c)
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error", nil)
		h.denied(c)
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		h.denied(c)
		return
	}

	identity, err := p.ExchangeCode(
		c.Request.Context(),
		code,
		codeVerifier,
	)
	if err != nil {
		// A replayed code lands here: the provider refuses to
		// exchange a consumed artifact.
		logger.Warn("oauth code exchange failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		h.denied(c)
		return
	}

	if !h.allow.Allowed(identity.Email) {
		logger.Warn("unauthorized login attempt", map[string]any{
			"provider": providerName,
			"email":    identity.Email,
		})
		h.denied(c)
		return
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		h.denied(c)
		return
	}

	now := time.Now()
	expiresAt := now.Add(sessionTTL)

	sess := session.Session{
		SessionID: sessionID,
		Email:     identity.Email,
		Provider:  identity.Provider,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	if err := h.sessionStore.Create(c.Request.Context(), sess); err != nil {
		logger.Error("failed to persist session", map[string]any{
			"error": err.Error(),
		})
		h.denied(c)
		return
	}

	session.SetCookie(c.Writer, h.codec.Sign(sessionID), expiresAt, session.CookieOptions{
		Secure: h.secureCookie,
	})

	logger.Info("login success", map[string]any{
		"email": identity.Email,
		"ip":    c.ClientIP(),
	})

	c.Redirect(http.StatusFound, landingPath)
}

func (h *Handler) Logout(c *gin.Context) {

	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		if sessionID, ok := h.codec.Verify(cookie.Value); ok {
			// Best effort; the cookie is cleared either way.
			_ = h.sessionStore.Delete(c.Request.Context(), sessionID)
		}
	}

	session.ClearCookie(c.Writer, session.CookieOptions{
		Secure: h.secureCookie,
	})

	c.Redirect(http.StatusFound, homePath)
}

// denied clears any partial session cookie and sends the browser to
// the denial page.
func (h *Handler) denied(c *gin.Context) {
	session.ClearCookie(c.Writer, session.CookieOptions{
		Secure: h.secureCookie,
	})
	c.Redirect(http.StatusFound, middleware.DeniedPath)
}
