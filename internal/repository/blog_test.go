package repository

import (
	"context"
	"regexp"
	"testing"

	"quill/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestBlogRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()

	blog := &models.Blog{Name: "Tech", Description: "A blog about tech", WebsiteURL: "https://tech.example.com"}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "blogs"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Create(ctx, blog)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()

	t.Run("With search term", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "blogs" WHERE name ILIKE $1`)).
			WithArgs("%tech%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Tech")
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "blogs" WHERE name ILIKE $1 AND "blogs"."deleted_at" IS NULL ORDER BY created_at DESC, id DESC LIMIT $2`)).
			WithArgs("%tech%", 10).
			WillReturnRows(rows)

		blogs, total, err := repo.List(ctx, "tech", "createdAt", "desc", 10, 0)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, blogs, 1)
		assert.Equal(t, "Tech", blogs[0].Name)
	})

	t.Run("Unknown sort field falls back to created_at", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "blogs"`)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC, id DESC`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

		_, _, err := repo.List(ctx, "", "; DROP TABLE blogs", "desc", 10, 0)
		assert.NoError(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "blogs" SET "deleted_at"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_Exists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()

	t.Run("Present", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "blogs" WHERE id = $1`)).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		ok, err := repo.Exists(ctx, 1)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Soft-deleted rows do not count", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "blogs" WHERE id = $1`)).
			WithArgs(99).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		ok, err := repo.Exists(ctx, 99)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBlogRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "blogs"`)).
		WithArgs(99, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	blog, err := repo.GetByID(ctx, 99)
	assert.Error(t, err)
	assert.Nil(t, blog)
	assert.NoError(t, mock.ExpectationsWereMet())
}
