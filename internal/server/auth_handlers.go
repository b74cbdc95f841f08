package server

import (
	"time"

	"momentcanvas/internal/models"
	"momentcanvas/internal/service"
	"momentcanvas/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SignupRequest is the POST /api/auth/signup payload.
type SignupRequest struct {
	LoginID  string `json:"login_id" validate:"required"`
	Password string `json:"password" validate:"required"`
	Nickname string `json:"nickname" validate:"required"`
	Birthday string `json:"birthday,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Persona  string `json:"persona,omitempty"`
}

// LoginRequest is the POST /api/auth/login payload.
type LoginRequest struct {
	LoginID  string `json:"login_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ReissueRequest is the POST /api/auth/reissue payload.
type ReissueRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// ExchangeRequest is the POST /api/auth/exchange payload.
type ExchangeRequest struct {
	Code string `json:"code" validate:"required"`
}

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a local account with loginID and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup request"
// @Success 201 {object} models.User
// @Failure 400 {object} object{error=string,code=string}
// @Failure 409 {object} object{error=string,code=string}
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	in := service.SignupInput{
		LoginID:  req.LoginID,
		Password: req.Password,
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

	user, err := s.userService.Signup(c.Context(), in)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate with loginID and password, receive a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} service.TokenPair
// @Failure 401 {object} object{error=string,code=string}
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	pair, err := s.authService.Login(c.Context(), req.LoginID, req.Password)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(pair)
}

// Reissue handles POST /api/auth/reissue
// @Summary Rotate tokens
// @Description Exchange a valid refresh token for a fresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ReissueRequest true "Refresh token"
// @Success 200 {object} service.TokenPair
// @Failure 401 {object} object{error=string,code=string}
// @Router /auth/reissue [post]
func (s *Server) Reissue(c *fiber.Ctx) error {
	var req ReissueRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	pair, err := s.authService.Reissue(c.Context(), req.RefreshToken)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(pair)
}

// ExchangeToken handles POST /api/auth/exchange
// @Summary Redeem a one-time code
// @Description Consume a one-time OAuth2 exchange code for a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ExchangeRequest true "One-time code"
// @Success 200 {object} service.TokenPair
// @Failure 401 {object} object{error=string,code=string}
// @Router /auth/exchange [post]
func (s *Server) ExchangeToken(c *fiber.Ctx) error {
	var req ExchangeRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError("Invalid request body"))
	}
	if err := validation.ValidateStruct(&req); err != nil {
		return models.RespondWithError(c, models.NewValidationError(err.Error()))
	}

	pair, err := s.authService.ExchangeCode(c.Context(), req.Code)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(pair)
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Discard the server-side refresh token
// @Tags auth
// @Security BearerAuth
// @Success 204
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	if err := s.authService.Logout(c.Context(), userID); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
