package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropxcult-admin/models"
)

var productCols = []string{"id", "name", "slug", "description", "price", "category", "images", "sizes", "stock", "is_featured", "created_at", "updated_at"}

func TestProductListNewestFirst(t *testing.T) {
	mock := setupMockDB(t)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(productCols).
		AddRow("p2", "Cult Hoodie", "cult-hoodie", "", 2499.0, "hoodies", []byte(`["/h.png"]`), []byte(`["M","L"]`), 10, true, now, now).
		AddRow("p1", "Cult Tee", "cult-tee", "soft", 999.0, "tees", []byte(`["/t.png"]`), nil, 50, false, now.Add(-time.Hour), now)
	mock.ExpectQuery("SELECT .+ FROM products ORDER BY created_at DESC").WillReturnRows(rows)

	got, err := NewProductRepository().List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].ID)
	assert.Equal(t, []string{"M", "L"}, got[0].Sizes)
	assert.Equal(t, []string{}, got[1].Sizes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductGetByIDNotFound(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM products WHERE id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := NewProductRepository().GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductCreateAppliesDefaults(t *testing.T) {
	mock := setupMockDB(t)

	imagesJSON, _ := json.Marshal([]string{"/img/tee.png"})
	sizesJSON, _ := json.Marshal(models.DefaultSizes)
	mock.ExpectExec("INSERT INTO products").
		WithArgs(sqlmock.AnyArg(), "Cult Tee", "cult-tee", `Tom & Jerry's "tee"`, 999.0, "",
			imagesJSON, sizesJSON, models.DefaultStock, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := &models.CreateProductRequest{
		Name:        " Cult Tee ",
		Slug:        "cult-tee",
		Description: `Tom & Jerry's <script>alert(1)</script>"tee"`,
		Price:       999,
		Image:       "/img/tee.png",
	}
	p, err := NewProductRepository().Create(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Cult Tee", p.Name)
	assert.Equal(t, `Tom & Jerry's "tee"`, p.Description)
	assert.Equal(t, []string{"/img/tee.png"}, p.Images)
	assert.Equal(t, []string{"S", "M", "L", "XL"}, p.Sizes)
	assert.Equal(t, 50, p.Stock)
	assert.False(t, p.IsFeatured)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductUpdate(t *testing.T) {
	mock := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM products WHERE id = \\$1").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow("p1", "Cult Tee", "cult-tee", "", 999.0, "tees", []byte(`["/t.png"]`), []byte(`["S"]`), 50, false, now, now))
	mock.ExpectExec("UPDATE products").
		WillReturnResult(sqlmock.NewResult(0, 1))

	price := 1299.0
	featured := true
	p, err := NewProductRepository().Update(context.Background(), "p1", &models.UpdateProductRequest{Price: &price, IsFeatured: &featured})
	require.NoError(t, err)
	assert.Equal(t, 1299.0, p.Price)
	assert.True(t, p.IsFeatured)
	assert.Equal(t, "Cult Tee", p.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductUpdateDescriptionIsStoredUnescaped(t *testing.T) {
	mock := setupMockDB(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT .+ FROM products WHERE id = \\$1").
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows(productCols).
			AddRow("p1", "Cult Tee", "cult-tee", "", 999.0, "tees", []byte(`["/t.png"]`), []byte(`["S"]`), 50, false, now, now))
	mock.ExpectExec("UPDATE products").
		WithArgs("Cult Tee", "<3 & 'drop' 2", 999.0, "tees", sqlmock.AnyArg(), sqlmock.AnyArg(), 50, false, sqlmock.AnyArg(), "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	desc := "<b>&lt;3</b> & 'drop' 2"
	p, err := NewProductRepository().Update(context.Background(), "p1", &models.UpdateProductRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "<3 & 'drop' 2", p.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductDelete(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectExec("DELETE FROM products WHERE id = \\$1").WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM products WHERE id = \\$1").WithArgs("gone").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewProductRepository()
	require.NoError(t, repo.Delete(context.Background(), "p1"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "gone"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductCount(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM products").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := NewProductRepository().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}
