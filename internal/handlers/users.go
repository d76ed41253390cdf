package handlers

import (
	"errors"
	"net/http"

	"itemvault/internal/service"

	"github.com/gin-gonic/gin"
)

type updateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	FullName *string `json:"full_name"`
}

// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/users/me [get]
// @Security     BearerAuth
func (h *Handler) getCurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// @Summary      Update own profile
// @Description  Only fields present in the payload change; an empty payload returns the record unchanged.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  models.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/users/me [put]
// @Security     BearerAuth
func (h *Handler) updateCurrentUser(c *gin.Context) {
	var input updateUserRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	user := currentUser(c)
	updated, err := h.services.Users.UpdateProfile(c.Request.Context(), user, service.UserPatch{
		Email:    input.Email,
		FullName: input.FullName,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errEmailTaken})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to update profile", "users_update_failed", err, "user_id", user.ID)
		return
	}
	c.JSON(http.StatusOK, updated)
}
