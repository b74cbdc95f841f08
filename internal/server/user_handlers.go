package server

import (
	"io"
	"time"

	"momentcanvas/internal/models"
	"momentcanvas/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UpdateProfileRequest is the PUT /api/users/me payload.
type UpdateProfileRequest struct {
	Nickname string `json:"nickname,omitempty"`
	Birthday string `json:"birthday,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Persona  string `json:"persona,omitempty"`
}

// GetMyProfile handles GET /api/users/me
// @Summary Get my profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	user, err := s.userService.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
// @Summary Update my profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.User
// @Failure 400 {object} object{error=string,code=string}
// @Failure 409 {object} object{error=string,code=string}
// @Router /users/me [put]
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}

	in := service.UpdateProfileInput{
		UserID:   userID,
		Nickname: req.Nickname,
		Gender:   models.Gender(req.Gender),
		Persona:  req.Persona,
	}
	if req.Birthday != "" {
		birthday, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			return models.RespondWithError(c,
				models.NewValidationError("Birthday must be formatted as YYYY-MM-DD"))
		}
		in.Birthday = &birthday
	}

	user, err := s.userService.UpdateProfile(c.Context(), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(user)
}

// Withdraw handles DELETE /api/users/me
// @Summary Withdraw my account
// @Tags users
// @Security BearerAuth
// @Success 204
// @Router /users/me [delete]
func (s *Server) Withdraw(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	if err := s.userService.Withdraw(c.Context(), userID); err != nil {
		return models.RespondWithError(c, err)
	}

	// A withdrawn account has no live session to keep.
	if s.authService != nil {
		_ = s.authService.Logout(c.Context(), userID)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CheckNickname handles GET /api/users/nickname-available?nickname=...
// @Summary Check nickname availability
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param nickname query string true "Nickname to check"
// @Success 200 {object} object{available=bool}
// @Router /users/nickname-available [get]
func (s *Server) CheckNickname(c *fiber.Ctx) error {
	nickname := c.Query("nickname")
	available, err := s.userService.NicknameAvailable(c.Context(), nickname)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"available": available})
}

// UploadProfileImage handles POST /api/users/me/profile-image
// @Summary Upload a profile image
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param image formData file true "Image file (JPEG, PNG or WebP)"
// @Success 200 {object} models.User
// @Failure 400 {object} object{error=string,code=string}
// @Router /users/me/profile-image [post]
func (s *Server) UploadProfileImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	content, originalName, err := readUploadedImage(c)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	saved, err := s.imageService.Save(originalName, content)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	previous := user.SavedProfileImageName
	user.OrgProfileImageName = saved.OriginalName
	user.SavedProfileImageName = saved.SavedName
	if err := s.userRepo.Update(c.Context(), user); err != nil {
		_ = s.imageService.Remove(saved.SavedName)
		return models.RespondWithError(c, err)
	}
	if previous != "" {
		_ = s.imageService.Remove(previous)
	}

	return c.JSON(user)
}

// readUploadedImage pulls the "image" multipart field into memory.
func readUploadedImage(c *fiber.Ctx) ([]byte, string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		return nil, "", models.NewValidationError("No file uploaded")
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", models.NewValidationError("Unable to read uploaded file")
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, "", models.NewValidationError("Unable to read uploaded file")
	}
	return content, file.Filename, nil
}
