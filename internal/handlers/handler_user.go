package handlers

import (
	portssvc "github.com/SscSPs/social_media_app/internal/core/ports/services"
	"github.com/SscSPs/social_media_app/internal/dto"
	"github.com/SscSPs/social_media_app/internal/middleware"
	"github.com/SscSPs/social_media_app/internal/validation"
	"github.com/gin-gonic/gin"
)

// UserHandler serves profile and follow endpoints.
type UserHandler struct {
	userService portssvc.UserSvcFacade
	auth        *middleware.Authenticator
}

func NewUserHandler(us portssvc.UserSvcFacade, auth *middleware.Authenticator) *UserHandler {
	return &UserHandler{userService: us, auth: auth}
}

// registerUserRoutes registers profile routes. The :username route is
// registered last so that the fixed paths take precedence.
func registerUserRoutes(users *gin.RouterGroup, h *UserHandler) {
	users.GET("/me", h.GetMe)
	users.PATCH("/me", h.UpdateMe)
	users.POST("/follow", h.Follow)
	users.DELETE("/follow/:user_id", h.Unfollow)
	users.GET("/:username", h.GetProfile)
}

// GetMe godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} dto.Response{result=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	payload, ok := authenticate(c, h.auth)
	if !ok {
		return
	}
	user, err := h.userService.GetMe(c.Request.Context(), payload.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Get my profile success", dto.ToUserResponse(user))
}

// UpdateMe godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param profile body dto.UpdateMeRequest true "Fields to change"
// @Success 200 {object} dto.Response{result=dto.UserResponse}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "User not verified"
// @Failure 409 {object} dto.ErrorResponse "Username already exists"
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	payload, ok := authenticateVerified(c, h.auth)
	if !ok {
		return
	}
	var req dto.UpdateMeRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.UpdateMe(req.ToValidationInput()).Err(); err != nil {
		respondError(c, err)
		return
	}

	in := portssvc.UpdateMeInput{
		Name:       req.Name,
		Bio:        req.Bio,
		Location:   req.Location,
		Website:    req.Website,
		Username:   req.Username,
		Avatar:     req.Avatar,
		CoverPhoto: req.CoverPhoto,
	}
	if req.DateOfBirth != nil {
		dob, err := validation.ParseDate(*req.DateOfBirth)
		if err != nil {
			respondError(c, err)
			return
		}
		in.DateOfBirth = &dob
	}

	user, err := h.userService.UpdateMe(c.Request.Context(), payload.UserID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Update my profile success", dto.ToUserResponse(user))
}

// GetProfile godoc
// @Summary Get a public profile
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.Response{result=dto.ProfileResponse}
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/{username} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Get profile success", dto.ToProfileResponse(user))
}

// Follow godoc
// @Summary Follow a user
// @Tags users
// @Accept json
// @Produce json
// @Param follow body dto.FollowRequest true "User to follow"
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "User not verified"
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/follow [post]
func (h *UserHandler) Follow(c *gin.Context) {
	payload, ok := authenticateVerified(c, h.auth)
	if !ok {
		return
	}
	var req dto.FollowRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := validation.Follow(req.FollowedUserID).Err(); err != nil {
		respondError(c, err)
		return
	}
	if err := h.userService.Follow(c.Request.Context(), payload.UserID, req.FollowedUserID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Follow success", nil)
}

// Unfollow godoc
// @Summary Unfollow a user
// @Tags users
// @Produce json
// @Param user_id path string true "Followed user ID"
// @Success 200 {object} dto.Response
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "User not verified"
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/follow/{user_id} [delete]
func (h *UserHandler) Unfollow(c *gin.Context) {
	payload, ok := authenticateVerified(c, h.auth)
	if !ok {
		return
	}
	followedUserID := c.Param("user_id")
	if err := validation.Follow(followedUserID).Err(); err != nil {
		respondError(c, err)
		return
	}
	if err := h.userService.Unfollow(c.Request.Context(), payload.UserID, followedUserID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Unfollow success", nil)
}
