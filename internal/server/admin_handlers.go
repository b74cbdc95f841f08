package server

import (
	"momentcanvas/internal/models"
	"momentcanvas/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ChangeStatusRequest is the PUT /api/admin/users/:userId/status payload.
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeUserStatus handles PUT /api/admin/users/:userId/status
// @Summary Change a user's status
// @Description Admin-only: set a user's status to ACTIVE, INACTIVE or WITHDRAWN
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param request body ChangeStatusRequest true "New status"
// @Success 200 {object} models.User
// @Failure 403 {object} object{error=string,code=string}
// @Failure 409 {object} object{error=string,code=string}
// @Router /admin/users/{userId}/status [put]
func (s *Server) ChangeUserStatus(c *fiber.Ctx) error {
	callerRole := models.UserRole(c.Locals("userRole").(string))
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	var req ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	user, err := s.userService.ChangeStatus(c.Context(), callerRole, targetID, models.UserStatus(req.Status))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}
