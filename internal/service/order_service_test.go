package service

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newOrderServiceForTest(t *testing.T, db *gorm.DB, now time.Time) *OrderService {
	t.Helper()
	svc := NewOrderService(
		newTestConfig(),
		repository.NewOrderRepository(db),
		repository.NewGuestRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewProductSizeRepository(db),
		repository.NewVoucherRepository(db),
		repository.NewVoucherUsageRepository(db),
		nil,
	)
	svc.now = func() time.Time { return now }
	return svc
}

func TestCreateOrderForGuest(t *testing.T) {
	db := setupServiceTestDB(t)
	catalog := createTestCatalog(t, db, "Air Max")
	svc := newOrderServiceForTest(t, db, time.Now())

	order, err := svc.CreateOrder(CreateOrderInput{
		Guest: &GuestInput{
			FullName: " Trần Thị B ",
			Email:    "Guest@Example.com",
			Phone:    "0901234567",
			City:     "Hà Nội",
		},
		Note: "Giao giờ hành chính",
		Items: []CreateOrderItemInput{
			{ProductSizeID: catalog.Size.ID, Quantity: 2, Price: models.NewMoneyFromInt(300000)},
		},
	})
	if err != nil {
		t.Fatalf("create guest order failed: %v", err)
	}
	if order.CustomerID != nil || order.GuestID == nil {
		t.Fatalf("guest order should reference only a guest: customer=%v guest=%v", order.CustomerID, order.GuestID)
	}
	if !order.TotalPrice.Decimal.Equal(decimal.NewFromInt(600000)) {
		t.Fatalf("expected total 600000, got %s", order.TotalPrice.String())
	}
	if order.OrderStatus != constants.OrderStatusProcessing || order.PaymentMethod != constants.PaymentMethodCashOnDelivery {
		t.Fatalf("unexpected initial state: %s %s", order.OrderStatus, order.PaymentMethod)
	}

	stored, err := svc.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if stored.Guest == nil || stored.Guest.FullName != "Trần Thị B" || stored.Guest.Email != "guest@example.com" {
		t.Fatalf("guest not persisted as expected: %+v", stored.Guest)
	}
	if len(stored.Items) != 1 || stored.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", stored.Items)
	}
}

func TestCreateOrderForCustomer(t *testing.T) {
	db := setupServiceTestDB(t)
	catalog := createTestCatalog(t, db, "Ultraboost")
	customer := createTestCustomer(t, db, "buyer@example.com")
	svc := newOrderServiceForTest(t, db, time.Now())

	order, err := svc.CreateOrder(CreateOrderInput{
		CustomerID: customer.ID,
		Guest:      &GuestInput{FullName: "ignored", Phone: "0900000000"},
		IsPaid:     true,
		Items: []CreateOrderItemInput{
			{ProductSizeID: catalog.Size.ID, Quantity: 1, Price: models.NewMoneyFromInt(250000)},
			{ProductSizeID: catalog.Size.ID, Quantity: 3, Price: models.NewMoneyFromInt(100000)},
		},
	})
	if err != nil {
		t.Fatalf("create customer order failed: %v", err)
	}
	if order.CustomerID == nil || *order.CustomerID != customer.ID || order.GuestID != nil {
		t.Fatalf("customer order should reference only the customer")
	}
	if !order.IsPaid || order.PaidAt == nil {
		t.Fatalf("paid flag from caller should be kept")
	}
	if !order.TotalPrice.Decimal.Equal(decimal.NewFromInt(550000)) {
		t.Fatalf("expected total 550000, got %s", order.TotalPrice.String())
	}

	var guests int64
	if err := db.Model(&models.Guest{}).Count(&guests).Error; err != nil {
		t.Fatalf("count guests failed: %v", err)
	}
	if guests != 0 {
		t.Fatalf("customer checkout must not create a guest, got %d", guests)
	}
}

func TestCreateOrderRejectsInvalidInput(t *testing.T) {
	db := setupServiceTestDB(t)
	catalog := createTestCatalog(t, db, "Stan Smith")
	svc := newOrderServiceForTest(t, db, time.Now())
	item := CreateOrderItemInput{ProductSizeID: catalog.Size.ID, Quantity: 1, Price: models.NewMoneyFromInt(100000)}

	if _, err := svc.CreateOrder(CreateOrderInput{Items: []CreateOrderItemInput{item}}); !errors.Is(err, ErrGuestInfoRequired) {
		t.Fatalf("expected ErrGuestInfoRequired, got %v", err)
	}
	guest := &GuestInput{FullName: "Khách", Phone: "0911111111"}
	if _, err := svc.CreateOrder(CreateOrderInput{Guest: guest}); !errors.Is(err, ErrOrderItemsEmpty) {
		t.Fatalf("expected ErrOrderItemsEmpty, got %v", err)
	}
	bad := item
	bad.Quantity = 0
	if _, err := svc.CreateOrder(CreateOrderInput{Guest: guest, Items: []CreateOrderItemInput{bad}}); !errors.Is(err, ErrOrderItemInvalid) {
		t.Fatalf("expected ErrOrderItemInvalid for zero quantity, got %v", err)
	}
	missing := item
	missing.ProductSizeID = 9999
	if _, err := svc.CreateOrder(CreateOrderInput{Guest: guest, Items: []CreateOrderItemInput{missing}}); !errors.Is(err, ErrOrderItemInvalid) {
		t.Fatalf("expected ErrOrderItemInvalid for unknown size, got %v", err)
	}
	if _, err := svc.CreateOrder(CreateOrderInput{CustomerID: 777, Items: []CreateOrderItemInput{item}}); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
	if _, err := svc.CreateOrder(CreateOrderInput{Guest: &GuestInput{FullName: "X", Phone: "0911111111", Email: "not-an-email"}, Items: []CreateOrderItemInput{item}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad email, got %v", err)
	}

	var orders int64
	if err := db.Model(&models.Order{}).Count(&orders).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orders != 0 {
		t.Fatalf("rejected orders must not be persisted, got %d", orders)
	}
	var guests int64
	if err := db.Model(&models.Guest{}).Count(&guests).Error; err != nil {
		t.Fatalf("count guests failed: %v", err)
	}
	if guests != 0 {
		t.Fatalf("failed guest checkout must roll back the guest row, got %d", guests)
	}
}

func TestCreateOrderIDFormatAndCollisionSuffix(t *testing.T) {
	db := setupServiceTestDB(t)
	catalog := createTestCatalog(t, db, "Chuck 70")
	now := time.Date(2026, time.March, 9, 14, 5, 7, 0, time.UTC)
	svc := newOrderServiceForTest(t, db, now)
	base := now.In(svc.loc).Format(constants.OrderIDLayout)

	pattern := regexp.MustCompile(`^\d{14}(-\d{2})?$`)
	want := []string{base, base + "-01", base + "-02"}
	for i, expected := range want {
		order, err := svc.CreateOrder(CreateOrderInput{
			Guest: &GuestInput{FullName: "Khách", Phone: "0911111111"},
			Items: []CreateOrderItemInput{{ProductSizeID: catalog.Size.ID, Quantity: 1, Price: models.NewMoneyFromInt(1000)}},
		})
		if err != nil {
			t.Fatalf("create order %d failed: %v", i, err)
		}
		if order.ID != expected {
			t.Fatalf("order %d: expected id %s, got %s", i, expected, order.ID)
		}
		if !pattern.MatchString(order.ID) {
			t.Fatalf("order id %s does not match ddMMyyyyHHmmss[-NN]", order.ID)
		}
	}
}

func TestUpdateOrderChangesOnlyNoteAndPaidFlag(t *testing.T) {
	db := setupServiceTestDB(t)
	customer := createTestCustomer(t, db, "update@example.com")
	order := createTestOrder(t, db, "07012026100000", customer.ID, 500000)
	svc := newOrderServiceForTest(t, db, time.Now())

	note := "Đã gọi xác nhận"
	updated, err := svc.UpdateOrder(order.ID, UpdateOrderInput{Note: &note, IsPaid: true})
	if err != nil {
		t.Fatalf("update order failed: %v", err)
	}
	if updated.OrderNote != note || !updated.IsPaid {
		t.Fatalf("note/paid not updated: %+v", updated)
	}
	if updated.OrderStatus != constants.OrderStatusProcessing || !updated.TotalPrice.Decimal.Equal(decimal.NewFromInt(500000)) {
		t.Fatalf("other fields must not change: %+v", updated)
	}

	updated, err = svc.UpdateOrder(order.ID, UpdateOrderInput{IsPaid: false})
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}
	if updated.OrderNote != note || updated.IsPaid {
		t.Fatalf("nil note must keep existing note and paid flag must follow input: %+v", updated)
	}

	if _, err := svc.UpdateOrder("missing", UpdateOrderInput{}); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestDeleteOrderReleasesVoucherUsage(t *testing.T) {
	db := setupServiceTestDB(t)
	customer := createTestCustomer(t, db, "delete@example.com")
	voucher := createTestVoucher(t, db, sale10Voucher())
	order := createTestOrder(t, db, "08012026100000", customer.ID, 600000)
	voucherSvc := newVoucherServiceForTest(t, db, time.Now())
	if _, err := voucherSvc.Apply("SALE10", customer.ID, order.ID); err != nil {
		t.Fatalf("apply voucher failed: %v", err)
	}

	svc := newOrderServiceForTest(t, db, time.Now())
	if err := svc.DeleteOrder(order.ID); err != nil {
		t.Fatalf("delete order failed: %v", err)
	}
	if _, err := svc.GetOrder(order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("order should be gone, got %v", err)
	}
	var usages int64
	if err := db.Model(&models.VoucherUsage{}).Count(&usages).Error; err != nil {
		t.Fatalf("count usages failed: %v", err)
	}
	if usages != 0 {
		t.Fatalf("voucher usages should be deleted with the order, got %d", usages)
	}
	var reloaded models.Voucher
	if err := db.First(&reloaded, voucher.ID).Error; err != nil {
		t.Fatalf("reload voucher failed: %v", err)
	}
	if reloaded.UsedCount != 0 {
		t.Fatalf("used_count should be released, got %d", reloaded.UsedCount)
	}
}

func TestGetOrderItemsView(t *testing.T) {
	db := setupServiceTestDB(t)
	catalog := createTestCatalog(t, db, "Samba")
	svc := newOrderServiceForTest(t, db, time.Now())
	order, err := svc.CreateOrder(CreateOrderInput{
		Guest: &GuestInput{FullName: "Khách", Phone: "0911111111"},
		Items: []CreateOrderItemInput{{ProductSizeID: catalog.Size.ID, Quantity: 2, Price: models.NewMoneyFromInt(320000)}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	items, err := svc.GetOrderItems(order.ID)
	if err != nil {
		t.Fatalf("get items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	item := items[0]
	if item.ProductName != "Samba" || item.ColorName != "Đen" || item.SizeValue != 41 || item.Quantity != 2 {
		t.Fatalf("unexpected item view: %+v", item)
	}
	if !item.UnitPrice.Decimal.Equal(decimal.NewFromInt(320000)) {
		t.Fatalf("unexpected unit price: %s", item.UnitPrice.String())
	}
}

func TestPaidOrderIsIdempotent(t *testing.T) {
	db := setupServiceTestDB(t)
	customer := createTestCustomer(t, db, "paid@example.com")
	order := createTestOrder(t, db, "09012026100000", customer.ID, 300000)
	first := time.Date(2026, time.January, 9, 10, 0, 0, 0, time.UTC)
	svc := newOrderServiceForTest(t, db, first)

	paid, err := svc.PaidOrder(order.ID)
	if err != nil {
		t.Fatalf("paid order failed: %v", err)
	}
	if !paid.IsPaid || paid.OrderStatus != constants.OrderStatusPaymentConfirmed || paid.PaidAt == nil {
		t.Fatalf("order not confirmed: %+v", paid)
	}

	svc.now = func() time.Time { return first.Add(time.Hour) }
	again, err := svc.PaidOrder(order.ID)
	if err != nil {
		t.Fatalf("second paid failed: %v", err)
	}
	if !again.PaidAt.Equal(*paid.PaidAt) {
		t.Fatalf("paid_at should not move on repeated confirmation: %v vs %v", again.PaidAt, paid.PaidAt)
	}
}

func TestListCustomerOrders(t *testing.T) {
	db := setupServiceTestDB(t)
	customer := createTestCustomer(t, db, "history@example.com")
	other := createTestCustomer(t, db, "other-history@example.com")
	createTestOrder(t, db, "10012026100000", customer.ID, 100000)
	createTestOrder(t, db, "10012026100001", customer.ID, 200000)
	createTestOrder(t, db, "10012026100002", other.ID, 300000)
	svc := newOrderServiceForTest(t, db, time.Now())

	orders, total, err := svc.ListCustomerOrders(customer.ID, 1, 20)
	if err != nil {
		t.Fatalf("list customer orders failed: %v", err)
	}
	if total != 2 || len(orders) != 2 {
		t.Fatalf("expected 2 orders, got total=%d len=%d", total, len(orders))
	}
	if _, err := svc.GetCustomerOrder(other.ID, "10012026100000"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("foreign order must be hidden, got %v", err)
	}
}
