package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SscSPs/social_media_app/internal/apperrors"
	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
	"github.com/SscSPs/social_media_app/internal/dto"
	"github.com/SscSPs/social_media_app/internal/middleware"
	"github.com/SscSPs/social_media_app/internal/utils"
	"github.com/gin-gonic/gin"
)

const oauthStateCookie = "oauth_state"

// GoogleOAuthHandler handles Google OAuth related requests.
type GoogleOAuthHandler struct {
	sessionService   portssvc.SessionSvcFacade
	identity         portssvc.IdentityProvider
	redirectCallback string
	secureCookies    bool
}

// NewGoogleOAuthHandler creates a new instance of GoogleOAuthHandler. When
// redirectCallback is empty the callback answers with JSON instead of redirecting.
func NewGoogleOAuthHandler(ss portssvc.SessionSvcFacade, identity portssvc.IdentityProvider, redirectCallback string, secureCookies bool) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{
		sessionService:   ss,
		identity:         identity,
		redirectCallback: redirectCallback,
		secureCookies:    secureCookies,
	}
}

func registerGoogleOAuthRoutes(users *gin.RouterGroup, h *GoogleOAuthHandler) {
	users.GET("/oauth/google/login", h.LoginGoogle)
	users.GET("/oauth/google", h.CallbackGoogle)
}

// LoginGoogle godoc
// @Summary Start Google login
// @Description Redirects to the Google consent page.
// @Tags oauth
// @Success 307
// @Router /users/oauth/google/login [get]
func (h *GoogleOAuthHandler) LoginGoogle(c *gin.Context) {
	state, err := utils.RandomToken(16)
	if err != nil {
		respondError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusTemporaryRedirect, h.identity.LoginURL(state))
}

// CallbackGoogle godoc
// @Summary Google OAuth callback
// @Description Exchanges the authorization code, logs in or registers the Google account and returns a token pair.
// @Tags oauth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string false "State issued by the login endpoint"
// @Success 200 {object} dto.Response{result=dto.OAuthResponse}
// @Success 307 "Redirect to the client callback with the tokens in the query"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/oauth/google [get]
func (h *GoogleOAuthHandler) CallbackGoogle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	code := c.Query("code")
	if code == "" {
		logger.Warn("Authorization code missing in oauth callback")
		appErr := apperrors.NewBadRequestError("Authorization code is required.")
		c.JSON(appErr.Code, dto.ErrorResponse{Message: appErr.Message})
		return
	}

	// The state cookie exists only for flows started at LoginGoogle.
	if expected, err := c.Cookie(oauthStateCookie); err == nil {
		c.SetCookie(oauthStateCookie, "", -1, "/", "", h.secureCookies, true)
		if c.Query("state") != expected {
			logger.Warn("OAuth state mismatch")
			appErr := apperrors.NewBadRequestError("Invalid OAuth state.")
			c.JSON(appErr.Code, dto.ErrorResponse{Message: appErr.Message})
			return
		}
	}

	result, err := h.sessionService.OAuth(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("Google OAuth login completed", slog.Bool("new_user", result.NewUser))

	if h.redirectCallback == "" {
		respondOK(c, "Login success", dto.ToOAuthResponse(result))
		return
	}

	target, err := url.Parse(h.redirectCallback)
	if err != nil {
		respondError(c, err)
		return
	}
	q := target.Query()
	q.Set("access_token", result.AccessToken)
	q.Set("refresh_token", result.RefreshToken)
	q.Set("new_user", strconv.FormatBool(result.NewUser))
	q.Set("verify", strconv.Itoa(int(result.Verify)))
	target.RawQuery = q.Encode()
	c.Redirect(http.StatusTemporaryRedirect, target.String())
}
