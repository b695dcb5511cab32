package postgres

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/database"
)

func newSearchTestFixture(t *testing.T) (*SearchRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	repo := NewSearchRepository(mock)
	return repo, mock
}

// searchColumns returns the product columns plus the windowed total count.
func searchColumns() []string {
	return []string{
		"id", "name", "slug", "description", "brand_id", "brand_name",
		"category_id", "category_name", "base_price", "discounted_price", "currency",
		"stock_quantity", "image_url", "avg_rating", "review_count",
		"created_at", "updated_at", "total_count",
	}
}

func searchRow(total int) *pgxmock.Rows {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return pgxmock.NewRows(searchColumns()).AddRow(
		"prod-1", "Laptop Pro", "laptop-pro", "fast", nil, "",
		nil, "", int64(99900), int64(89900), "USD",
		5, "", 4.5, 12,
		now, now, total,
	)
}

func TestSearchRepository_Search_TermOnly(t *testing.T) {
	repo, mock := newSearchTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("p.name ILIKE (.+) OR p.description ILIKE").
		WithArgs("%laptop%", 20, 0).
		WillReturnRows(searchRow(1))

	products, total, err := repo.Search(context.Background(), domain.SearchQuery{Term: "laptop", Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Laptop Pro", products[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// LIKE metacharacters in the term are escaped so they match literally.
func TestSearchRepository_Search_EscapesLikeMetacharacters(t *testing.T) {
	repo, mock := newSearchTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("ILIKE").
		WithArgs(`%100\% cotton\_blend%`, 20, 0).
		WillReturnRows(pgxmock.NewRows(searchColumns()))

	_, _, err := repo.Search(context.Background(), domain.SearchQuery{Term: "100% cotton_blend", Limit: 20})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRepository_Search_AllFilters(t *testing.T) {
	repo, mock := newSearchTestFixture(t)
	defer mock.Close()

	brand := "Acme"
	category := "Laptops"
	minPrice := int64(50000)
	maxPrice := int64(100000)

	mock.ExpectQuery("p.discounted_price >=").
		WithArgs("%laptop%", "Acme", "Laptops", minPrice, maxPrice, 10, 10).
		WillReturnRows(searchRow(25))

	products, total, err := repo.Search(context.Background(), domain.SearchQuery{
		Term:     "laptop",
		Brand:    &brand,
		Category: &category,
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		Sort:     domain.SortPriceAsc,
		Page:     2,
		Limit:    10,
	})
	require.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, 25, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderClause(t *testing.T) {
	cases := map[string]string{
		domain.SortPriceAsc:   "ORDER BY p.discounted_price ASC, p.id ASC",
		domain.SortPriceDesc:  "ORDER BY p.discounted_price DESC, p.id ASC",
		domain.SortRatingDesc: "ORDER BY p.avg_rating DESC, p.id ASC",
		domain.SortNameAsc:    "ORDER BY p.name ASC, p.id ASC",
		domain.SortRelevance:  "ORDER BY p.id ASC",
		"":                    "ORDER BY p.id ASC",
	}
	for sort, want := range cases {
		assert.Equal(t, want, orderClause(sort), "sort %q", sort)
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c\\d`, escapeLike(`c\d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

func TestSearchRepository_Suggest(t *testing.T) {
	repo, mock := newSearchTestFixture(t)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"name", "brand", "category"}).
		AddRow("Laptop Pro", "Acme", "Laptops").
		AddRow("Laptop Air", "", "")

	mock.ExpectQuery("SELECT DISTINCT p.name").
		WithArgs("%lap%", 10).
		WillReturnRows(rows)

	suggestions, err := repo.Suggest(context.Background(), "lap", 10)
	require.NoError(t, err)
	require.Len(t, suggestions, 2)
	assert.Equal(t, "Laptop Pro", suggestions[0].Name)
	assert.Equal(t, "Acme", suggestions[0].Brand)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchRepository_Suggest_Empty(t *testing.T) {
	repo, mock := newSearchTestFixture(t)
	defer mock.Close()

	mock.ExpectQuery("SELECT DISTINCT p.name").
		WithArgs("%zzz%", 10).
		WillReturnRows(pgxmock.NewRows([]string{"name", "brand", "category"}))

	suggestions, err := repo.Suggest(context.Background(), "zzz", 10)
	require.NoError(t, err)
	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}
