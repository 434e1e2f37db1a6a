package server

import (
	"strings"

	"pulseboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
// The referenced account is not checked for existence; posts may outlive
// or even predate their account.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		AccountID uint   `json:"account_id"`
		Title     string `json:"title"`
		Body      string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.AccountID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Account ID is required"))
	}
	if strings.TrimSpace(req.Title) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}

	post := &models.Post{
		AccountID: req.AccountID,
		Title:     req.Title,
		Body:      req.Body,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return respondRepoError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts?title=...
// The title filter is an exact match; omitting it returns all posts.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postRepo.List(c.Context(), c.Query("title"))
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.JSON(posts)
}

// GetAccountPosts handles GET /api/posts/account/:accountId
// An unknown account yields an empty list, not a 404.
func (s *Server) GetAccountPosts(c *fiber.Ctx) error {
	accountID, err := s.parseID(c, "accountId", "account ID")
	if err != nil {
		return nil
	}

	posts, err := s.postRepo.ListByAccount(c.Context(), accountID)
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	post, err := s.postRepo.GetByID(c.Context(), id)
	if err != nil {
		return respondRepoError(c, err)
	}

	return c.JSON(post)
}

// UpdatePostTitle handles PATCH /api/posts/:id/title
func (s *Server) UpdatePostTitle(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	var req struct {
		Title string `json:"title"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Title) == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Title is required"))
	}

	if err := s.postRepo.UpdateField(c.Context(), id, "title", req.Title); err != nil {
		return respondRepoError(c, err)
	}

	return messageResponse(c, "Post updated successfully")
}

// UpdatePostBody handles PATCH /api/posts/:id/body
func (s *Server) UpdatePostBody(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.postRepo.UpdateField(c.Context(), id, "body", req.Body); err != nil {
		return respondRepoError(c, err)
	}

	return messageResponse(c, "Post updated successfully")
}

// IncrementPostLikes handles PATCH /api/posts/:id/increment_likes
func (s *Server) IncrementPostLikes(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	if err := s.postRepo.AdjustLikes(c.Context(), id, 1); err != nil {
		return respondRepoError(c, err)
	}

	return messageResponse(c, "Post updated successfully")
}

// DecrementPostLikes handles PATCH /api/posts/:id/decrement_likes
// The like count never goes below zero.
func (s *Server) DecrementPostLikes(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	if err := s.postRepo.AdjustLikes(c.Context(), id, -1); err != nil {
		return respondRepoError(c, err)
	}

	return messageResponse(c, "Post updated successfully")
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id", "post ID")
	if err != nil {
		return nil
	}

	if err := s.postRepo.Delete(c.Context(), id); err != nil {
		return respondRepoError(c, err)
	}

	return messageResponse(c, "Post deleted successfully")
}
