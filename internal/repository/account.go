// Package repository implements the data access layer for the application.
//
// Every mutating operation runs inside its own scoped transaction: begin,
// read what the mutation needs (usually an existence check), apply the
// mutation, commit. A failure anywhere in the scope rolls the whole thing
// back; no partial state is observable afterward. A scope is never shared
// across two requests.
package repository

import (
	"context"
	"errors"
	"fmt"

	"pulseboard/internal/models"
	"pulseboard/internal/observability"

	"gorm.io/gorm"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	List(ctx context.Context, username string) ([]models.Account, error)
	GetByID(ctx context.Context, id uint) (*models.Account, error)
	UpdateField(ctx context.Context, id uint, column string, value any) error
	Delete(ctx context.Context, id uint) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository returns a new AccountRepository implementation.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	defer observability.TrackQuery("create", "accounts")()

	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		observability.RecordStoreError("create", "accounts", "internal")
		return models.NewInternalError(err)
	}
	return nil
}

// List returns every account, or only exact username matches when username
// is non-empty. No matches is an empty slice, not an error.
func (r *accountRepository) List(ctx context.Context, username string) ([]models.Account, error) {
	defer observability.TrackQuery("list", "accounts")()

	query := r.db.WithContext(ctx)
	if username != "" {
		query = query.Where("username = ?", username)
	}

	accounts := []models.Account{}
	if err := query.Find(&accounts).Error; err != nil {
		observability.RecordStoreError("list", "accounts", "internal")
		return nil, models.NewInternalError(err)
	}
	return accounts, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id uint) (*models.Account, error) {
	defer observability.TrackQuery("get", "accounts")()

	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Account", id)
		}
		observability.RecordStoreError("get", "accounts", "internal")
		return nil, models.NewInternalError(err)
	}
	return &account, nil
}

// UpdateField sets exactly one column on the account with the given id.
// The column must be in the account whitelist; request payloads are never
// mapped onto the record wholesale.
func (r *accountRepository) UpdateField(ctx context.Context, id uint, column string, value any) error {
	if _, ok := models.AccountColumns[column]; !ok {
		return models.NewValidationError(fmt.Sprintf("unknown account field %q", column))
	}

	defer observability.TrackQuery("update", "accounts")()

	ctx, span := observability.TraceStoreMethod(ctx, "update", "accounts")
	defer span.End()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.First(&account, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Account", id)
			}
			observability.RecordStoreError("update", "accounts", "internal")
			return models.NewInternalError(err)
		}

		if err := tx.Model(&account).Update(column, value).Error; err != nil {
			observability.RecordStoreError("update", "accounts", "internal")
			return models.NewInternalError(err)
		}
		return nil
	})
}

func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "accounts")()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.First(&account, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Account", id)
			}
			observability.RecordStoreError("delete", "accounts", "internal")
			return models.NewInternalError(err)
		}

		// Posts referencing this account are deliberately left in place.
		if err := tx.Delete(&models.Account{}, id).Error; err != nil {
			observability.RecordStoreError("delete", "accounts", "internal")
			return models.NewInternalError(err)
		}
		return nil
	})
}
