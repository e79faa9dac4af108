//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := models.AllModels()
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearchIsCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	createCatalogFixture(t, db, "Air Jordan 1", constants.GenderMale)

	products, total, err := NewProductRepository(db).List(ProductListFilter{Search: "jordan", OnlyActive: true})
	if err != nil {
		t.Fatalf("list products failed: %v", err)
	}
	if total != 1 || len(products) != 1 {
		t.Fatalf("ILIKE search should match, total=%d", total)
	}
}

func TestPostgresVoucherIncrementWithLimit(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewVoucherRepository(db)
	now := time.Now()
	voucher := &models.Voucher{
		Code:          "PG1",
		Name:          "Postgres voucher",
		DiscountType:  constants.DiscountTypeFixed,
		DiscountValue: models.NewMoneyFromInt(50000),
		ConditionType: constants.ConditionAllCustomers,
		StartDate:     now.AddDate(0, 0, -1),
		EndDate:       now.AddDate(0, 0, 1),
		UsageLimit:    1,
		IsActive:      true,
	}
	if err := repo.Create(voucher); err != nil {
		t.Fatalf("create voucher failed: %v", err)
	}
	if ok, err := repo.IncrementUsedCountWithLimit(voucher.ID); err != nil || !ok {
		t.Fatalf("first increment should succeed, ok=%v err=%v", ok, err)
	}
	if ok, err := repo.IncrementUsedCountWithLimit(voucher.ID); err != nil || ok {
		t.Fatalf("second increment should be rejected, ok=%v err=%v", ok, err)
	}
}

func TestPostgresStatisticsQueries(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	fixture := createCatalogFixture(t, db, "Gazelle", constants.GenderFemale)
	createOrderFixture(t, db, "16032025090000", nil, []models.OrderItem{
		{ProductSizeID: fixture.Size.ID, Quantity: 3, UnitPrice: models.NewMoneyFromInt(150000)},
	})

	repo := NewStatisticsRepository(db)
	rows, err := repo.GetBestSellers(time.Now().Add(-time.Hour), time.Now().Add(time.Hour), 5)
	if err != nil {
		t.Fatalf("best sellers failed: %v", err)
	}
	if len(rows) != 1 || rows[0].TotalQuantitySold != 3 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
