package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/database"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func newReviewTestFixture(t *testing.T) (*ReviewRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewReviewRepository(mock)
	return repo, mock
}

func sampleReview() *domain.Review {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Review{
		ID:        "rev-1",
		ProductID: "prod-1",
		UserID:    "user-1",
		Rating:    4,
		Comment:   "solid build",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func reviewColumns() []string {
	return []string{"id", "product_id", "user_id", "rating", "comment", "created_at", "updated_at"}
}

func TestReviewRepository_Create_Success(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	rev := sampleReview()

	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(rev.ID, rev.ProductID, rev.UserID, rev.Rating, rev.Comment, rev.CreatedAt, rev.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), rev)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A foreign key violation on product_id means the product is gone; callers 404.
func TestReviewRepository_Create_MissingProduct(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	rev := sampleReview()

	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(rev.ID, rev.ProductID, rev.UserID, rev.Rating, rev.Comment, rev.CreatedAt, rev.UpdatedAt).
		WillReturnError(fmt.Errorf("ERROR: insert or update on table \"reviews\" violates foreign key constraint (SQLSTATE 23503)"))

	err := repo.Create(context.Background(), rev)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound), "expected ErrNotFound, got: %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM reviews").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	rev, err := repo.GetByID(context.Background(), "ghost")
	assert.Nil(t, rev)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByProductID_TotalCount(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)
	rows := pgxmock.NewRows(append(reviewColumns(), "total_count")).
		AddRow("rev-1", "prod-1", "user-1", 5, "great", now, now, 25).
		AddRow("rev-2", "prod-1", "user-2", 3, "fine", now.Add(-time.Hour), now.Add(-time.Hour), 25)

	mock.ExpectQuery("SELECT (.+) FROM reviews").
		WithArgs("prod-1", 10, 10).
		WillReturnRows(rows)

	reviews, total, err := repo.ListByProductID(context.Background(), "prod-1", 2, 10)
	require.NoError(t, err)
	assert.Len(t, reviews, 2)
	assert.Equal(t, 25, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListByProductID_Empty(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM reviews").
		WithArgs("prod-1", 20, 0).
		WillReturnRows(pgxmock.NewRows(append(reviewColumns(), "total_count")))

	reviews, total, err := repo.ListByProductID(context.Background(), "prod-1", 1, 20)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)
	assert.Zero(t, total)
}

func TestReviewRepository_Update_NotFound(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	rev := sampleReview()

	mock.ExpectExec("UPDATE reviews").
		WithArgs(rev.Rating, rev.Comment, rev.UpdatedAt, rev.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), rev)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReviewRepository_Delete_Success(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM reviews").
		WithArgs("rev-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(context.Background(), "rev-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepository_ListRatings(t *testing.T) {
	repo, mock := newReviewTestFixture(t)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"rating"}).AddRow(5).AddRow(4).AddRow(3)

	mock.ExpectQuery("SELECT rating FROM reviews").
		WithArgs("prod-1").
		WillReturnRows(rows)

	ratings, err := repo.ListRatings(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, []int{5, 4, 3}, ratings)
}
