package repository

import (
	"testing"
	"time"

	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/models"
)

func createVoucherFixture(t *testing.T, repo *GormVoucherRepository, code string, usageLimit, usedCount int) *models.Voucher {
	t.Helper()
	now := time.Now()
	voucher := &models.Voucher{
		Code:          code,
		Name:          "Voucher " + code,
		DiscountType:  constants.DiscountTypePercentage,
		DiscountValue: models.NewMoneyFromInt(10),
		ConditionType: constants.ConditionAllCustomers,
		StartDate:     now.AddDate(0, 0, -1),
		EndDate:       now.AddDate(0, 0, 1),
		UsageLimit:    usageLimit,
		UsedCount:     usedCount,
		IsActive:      true,
	}
	if err := repo.Create(voucher); err != nil {
		t.Fatalf("create voucher failed: %v", err)
	}
	return voucher
}

func TestIncrementUsedCountWithLimitStopsAtLimit(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewVoucherRepository(db)
	voucher := createVoucherFixture(t, repo, "LIMIT2", 2, 0)

	for i := 0; i < 2; i++ {
		ok, err := repo.IncrementUsedCountWithLimit(voucher.ID)
		if err != nil {
			t.Fatalf("increment failed: %v", err)
		}
		if !ok {
			t.Fatalf("increment #%d should succeed", i+1)
		}
	}
	ok, err := repo.IncrementUsedCountWithLimit(voucher.ID)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if ok {
		t.Fatalf("increment beyond limit should be rejected")
	}

	reloaded, err := repo.GetByID(voucher.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload voucher failed: %v", err)
	}
	if reloaded.UsedCount != 2 {
		t.Fatalf("used count want 2 got %d", reloaded.UsedCount)
	}
}

func TestIncrementUsedCountUnlimited(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewVoucherRepository(db)
	voucher := createVoucherFixture(t, repo, "FREE", 0, 100)

	ok, err := repo.IncrementUsedCountWithLimit(voucher.ID)
	if err != nil || !ok {
		t.Fatalf("unlimited voucher increment should succeed, ok=%v err=%v", ok, err)
	}
}

func TestListActiveOrdersByIDDesc(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewVoucherRepository(db)
	first := createVoucherFixture(t, repo, "A1", 0, 0)
	second := createVoucherFixture(t, repo, "A2", 0, 0)
	inactive := createVoucherFixture(t, repo, "A3", 0, 0)
	if err := repo.UpdateStatus(inactive.ID, false); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	vouchers, err := repo.ListActive()
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(vouchers) != 2 {
		t.Fatalf("active vouchers want 2 got %d", len(vouchers))
	}
	if vouchers[0].ID != second.ID || vouchers[1].ID != first.ID {
		t.Fatalf("unexpected order: %d, %d", vouchers[0].ID, vouchers[1].ID)
	}
}

func TestVoucherUsageUniquePerCustomer(t *testing.T) {
	db := setupRepositoryTestDB(t)
	voucher := createVoucherFixture(t, NewVoucherRepository(db), "ONCE", 0, 0)
	usageRepo := NewVoucherUsageRepository(db)

	usage := &models.VoucherUsage{VoucherID: voucher.ID, CustomerID: 7, OrderID: "01012025100000", UsedAt: time.Now()}
	if err := usageRepo.Create(usage); err != nil {
		t.Fatalf("create usage failed: %v", err)
	}
	exists, err := usageRepo.ExistsByVoucherAndCustomer(voucher.ID, 7)
	if err != nil || !exists {
		t.Fatalf("usage should exist, exists=%v err=%v", exists, err)
	}
	duplicate := &models.VoucherUsage{VoucherID: voucher.ID, CustomerID: 7, OrderID: "01012025100001", UsedAt: time.Now()}
	if err := usageRepo.Create(duplicate); err == nil {
		t.Fatalf("duplicate usage should violate unique index")
	}
}

func TestUpdateKeepsConcurrentUsedCount(t *testing.T) {
	db := setupRepositoryTestDB(t)
	repo := NewVoucherRepository(db)
	voucher := createVoucherFixture(t, repo, "EDITRACE", 5, 0)

	stale, err := repo.GetByID(voucher.ID)
	if err != nil || stale == nil {
		t.Fatalf("load voucher failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if ok, err := repo.IncrementUsedCountWithLimit(voucher.ID); err != nil || !ok {
			t.Fatalf("increment failed: ok=%v err=%v", ok, err)
		}
	}

	stale.Name = "Đổi tên"
	stale.UsageLimit = 10
	stale.IsActive = false
	if err := repo.Update(stale); err != nil {
		t.Fatalf("update voucher failed: %v", err)
	}

	reloaded, err := repo.GetByID(voucher.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload voucher failed: %v", err)
	}
	if reloaded.UsedCount != 2 {
		t.Fatalf("used_count must survive an edit, want 2 got %d", reloaded.UsedCount)
	}
	if reloaded.Name != "Đổi tên" || reloaded.UsageLimit != 10 || reloaded.IsActive {
		t.Fatalf("editable columns not written: %+v", reloaded)
	}
}
