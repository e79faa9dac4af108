package repository

import (
	"testing"
	"time"

	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/models"
)

func TestGetBestSellersAndCategoryQuantity(t *testing.T) {
	db := setupRepositoryTestDB(t)
	nike := createCatalogFixture(t, db, "Pegasus", constants.GenderMale)
	adidas := createCatalogFixture(t, db, "Samba", constants.GenderFemale)
	repo := NewStatisticsRepository(db)

	createOrderFixture(t, db, "15032025101014", nil, []models.OrderItem{
		{ProductSizeID: nike.Size.ID, Quantity: 1, UnitPrice: models.NewMoneyFromInt(100000)},
		{ProductSizeID: adidas.Size.ID, Quantity: 4, UnitPrice: models.NewMoneyFromInt(200000)},
	})

	startAt := time.Now().Add(-time.Hour)
	endAt := time.Now().Add(time.Hour)
	rows, err := repo.GetBestSellers(startAt, endAt, 5)
	if err != nil {
		t.Fatalf("best sellers failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows want 2 got %d", len(rows))
	}
	if rows[0].ProductName != "Samba" || rows[0].TotalQuantitySold != 4 {
		t.Fatalf("unexpected top seller: %+v", rows[0])
	}

	categories, err := repo.GetQuantityByCategory(startAt, endAt)
	if err != nil {
		t.Fatalf("category quantity failed: %v", err)
	}
	if len(categories) != 2 || categories[0].TotalQuantity != 4 {
		t.Fatalf("unexpected category rows: %+v", categories)
	}

	orders, err := repo.ListOrdersWithItems(startAt, endAt)
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if len(orders) != 1 || len(orders[0].Items) != 2 {
		t.Fatalf("orders with items mismatch: %+v", orders)
	}

	counts, err := repo.GetEntityCounts()
	if err != nil {
		t.Fatalf("entity counts failed: %v", err)
	}
	if counts.Products != 2 || counts.Brands != 2 || counts.Categories != 2 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}
