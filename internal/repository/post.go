package repository

import (
	"context"
	"errors"
	"fmt"

	"pulseboard/internal/models"
	"pulseboard/internal/observability"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	List(ctx context.Context, title string) ([]models.Post, error)
	ListByAccount(ctx context.Context, accountID uint) ([]models.Post, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	UpdateField(ctx context.Context, id uint, column string, value any) error
	AdjustLikes(ctx context.Context, id uint, delta int) error
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts the post. The account reference is not checked here;
// see DESIGN.md for the policy.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	defer observability.TrackQuery("create", "posts")()

	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		observability.RecordStoreError("create", "posts", "internal")
		return models.NewInternalError(err)
	}
	return nil
}

// List returns every post, or only exact title matches when title is non-empty.
func (r *postRepository) List(ctx context.Context, title string) ([]models.Post, error) {
	defer observability.TrackQuery("list", "posts")()

	query := r.db.WithContext(ctx)
	if title != "" {
		query = query.Where("title = ?", title)
	}

	posts := []models.Post{}
	if err := query.Find(&posts).Error; err != nil {
		observability.RecordStoreError("list", "posts", "internal")
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// ListByAccount returns all posts for the account, without checking that the
// account itself exists. An unknown account yields an empty slice.
func (r *postRepository) ListByAccount(ctx context.Context, accountID uint) ([]models.Post, error) {
	defer observability.TrackQuery("list_by_account", "posts")()

	posts := []models.Post{}
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Find(&posts).Error; err != nil {
		observability.RecordStoreError("list_by_account", "posts", "internal")
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	defer observability.TrackQuery("get", "posts")()

	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		observability.RecordStoreError("get", "posts", "internal")
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// UpdateField sets exactly one whitelisted column on the post with the given id.
func (r *postRepository) UpdateField(ctx context.Context, id uint, column string, value any) error {
	if _, ok := models.PostColumns[column]; !ok {
		return models.NewValidationError(fmt.Sprintf("unknown post field %q", column))
	}

	defer observability.TrackQuery("update", "posts")()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			observability.RecordStoreError("update", "posts", "internal")
			return models.NewInternalError(err)
		}

		if err := tx.Model(&post).Update(column, value).Error; err != nil {
			observability.RecordStoreError("update", "posts", "internal")
			return models.NewInternalError(err)
		}
		return nil
	})
}

// AdjustLikes applies like_count += delta, clamped at zero. The adjustment is
// a single relative UPDATE, so concurrent adjustments are applied against the
// current stored value and never lose writes. The CASE expression runs on both
// Postgres and SQLite.
func (r *postRepository) AdjustLikes(ctx context.Context, id uint, delta int) error {
	defer observability.TrackQuery("adjust_likes", "posts")()

	ctx, span := observability.TraceStoreMethod(ctx, "adjust_likes", "posts")
	defer span.End()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			observability.RecordStoreError("adjust_likes", "posts", "internal")
			return models.NewInternalError(err)
		}

		expr := gorm.Expr("CASE WHEN like_count + ? < 0 THEN 0 ELSE like_count + ? END", delta, delta)
		if err := tx.Model(&models.Post{}).Where("id = ?", id).Update("like_count", expr).Error; err != nil {
			observability.RecordStoreError("adjust_likes", "posts", "internal")
			observability.RecordErrorInContext(ctx, err)
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "posts")()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.First(&post, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			observability.RecordStoreError("delete", "posts", "internal")
			return models.NewInternalError(err)
		}

		if err := tx.Delete(&models.Post{}, id).Error; err != nil {
			observability.RecordStoreError("delete", "posts", "internal")
			return models.NewInternalError(err)
		}
		return nil
	})
}
