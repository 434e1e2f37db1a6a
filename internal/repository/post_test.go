package repository

import (
	"context"
	"regexp"
	"testing"

	"pulseboard/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	post := &models.Post{AccountID: 1, Title: "hi", Body: "world"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, post)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), post.ID)
	assert.Equal(t, 0, post.LikeCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_ListByAccount(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	t.Run("Returns the account's posts", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "account_id", "title"}).
			AddRow(1, 7, "first").
			AddRow(2, 7, "second")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE account_id = $1`)).
			WithArgs(7).
			WillReturnRows(rows)

		posts, err := repo.ListByAccount(ctx, 7)
		assert.NoError(t, err)
		assert.Len(t, posts, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unknown account yields empty slice, no existence check", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE account_id = $1`)).
			WithArgs(999).
			WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "title"}))

		posts, err := repo.ListByAccount(ctx, 999)
		assert.NoError(t, err)
		assert.Empty(t, posts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_AdjustLikes(t *testing.T) {
	ctx := context.Background()

	t.Run("Relative update inside one transaction", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(1, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "like_count"}).AddRow(1, 3))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "posts" SET "like_count"=CASE WHEN like_count + $1 < 0 THEN 0 ELSE like_count + $2 END`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.AdjustLikes(ctx, 1, 1)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing post rolls back with NotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "posts" WHERE "posts"."id" = $1`)).
			WithArgs(42, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectRollback()

		err := repo.AdjustLikes(ctx, 42, -1)
		assert.True(t, models.IsNotFound(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository_UpdateField_UnknownColumn(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	// like_count is not writable through the field update path
	err := repo.UpdateField(context.Background(), 1, "like_count", 99)
	require.Error(t, err)
	assert.False(t, models.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
