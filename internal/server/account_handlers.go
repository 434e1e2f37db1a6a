package server

import (
	"strings"

	"pulseboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateAccount handles POST /api/accounts
func (s *Server) CreateAccount(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Username string  `json:"username"`
		IsAdmin  bool    `json:"is_admin"`
		ImageURL *string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if strings.TrimSpace(req.Username) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	account := &models.Account{
		Username: req.Username,
		IsAdmin:  req.IsAdmin,
		ImageURL: req.ImageURL,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return respondRepoError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(account)
}

// GetAccounts handles GET /api/accounts?username=...
// The username filter is an exact match; omitting it returns all accounts.
func (s *Server) GetAccounts(c *fiber.Ctx) error {
	accounts, err := s.accountRepo.List(c.Context(), c.Query("username"))
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.JSON(accounts)
}

// GetAccount handles GET /api/accounts/:id
func (s *Server) GetAccount(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "account ID")
	if err != nil {
		return nil
	}

	account, err := s.accountRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.JSON(account)
}

// UpdateAccountUsername handles PATCH /api/accounts/:id/username
func (s *Server) UpdateAccountUsername(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "account ID")
	if err != nil {
		return nil
	}

	var req struct {
		Username string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Username) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username is required"))
	}

	if err := s.accountRepo.UpdateField(c.Context(), id, "username", req.Username); err != nil {
		return respondRepoError(c, err)
	}

	return messageResponse(c, "Account updated successfully")
}

// UpdateAccountAdmin handles PATCH /api/accounts/:id/is_admin
func (s *Server) UpdateAccountAdmin(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "account ID")
	if err != nil {
		return nil
	}

	var req struct {
		IsAdmin *bool `json:"is_admin"`
	}
	if err := c.BodyParser(&req); err != nil || req.IsAdmin == nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.accountRepo.UpdateField(c.Context(), id, "is_admin", *req.IsAdmin); err != nil {
		return respondRepoError(c, err)
	}

	return messageResponse(c, "Account updated successfully")
}

// UpdateAccountImage handles PATCH /api/accounts/:id/image_url
// A null image_url clears the stored value.
func (s *Server) UpdateAccountImage(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "account ID")
	if err != nil {
		return nil
	}

	var req struct {
		ImageURL *string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.accountRepo.UpdateField(c.Context(), id, "image_url", req.ImageURL); err != nil {
		return respondRepoError(c, err)
	}

	return messageResponse(c, "Account updated successfully")
}

// DeleteAccount handles DELETE /api/accounts/:id
// The account's posts are left in place.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "account ID")
	if err != nil {
		return nil
	}

	if err := s.accountRepo.Delete(c.Context(), id); err != nil {
		return respondRepoError(c, err)
	}

	return messageResponse(c, "Account deleted successfully")
}
