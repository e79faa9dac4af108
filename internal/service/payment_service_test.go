package service

import (
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/webbangiay/internal/constants"
	"github.com/webbangiay/internal/models"
	"github.com/webbangiay/internal/payment/vnpay"
)

func newPaymentServiceForTest(t *testing.T, orderSvc *OrderService) *PaymentService {
	t.Helper()
	cfg := newTestConfig()
	cfg.VNPay.TmnCode = "DEMOTMN1"
	cfg.VNPay.HashSecret = "SECRETKEY"
	cfg.VNPay.PayURL = "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"
	cfg.VNPay.ReturnURL = "http://localhost:3000/vnpay-return"
	cfg.VNPay.VerifySignature = true
	return NewPaymentService(cfg, orderSvc)
}

func signedReturnQuery(orderID, responseCode, secret string) url.Values {
	params := map[string]string{
		"vnp_TxnRef":       orderID,
		"vnp_ResponseCode": responseCode,
		"vnp_Amount":       "30000000",
		"vnp_BankCode":     "NCB",
		"vnp_OrderInfo":    "Thanh toan don hang: " + orderID,
	}
	params["vnp_SecureHash"] = vnpay.Sign(vnpay.CanonicalQuery(params), secret)
	values := url.Values{}
	for k, v := range params {
		values.Set(k, v)
	}
	return values
}

func TestCreateVNPayPaymentURLUsesOrderTotalWhenAmountZero(t *testing.T) {
	db := setupServiceTestDB(t)
	customer := createTestCustomer(t, db, "vnpay@example.com")
	order := createTestOrder(t, db, "11012026100000", customer.ID, 300000)
	orderSvc := newOrderServiceForTest(t, db, time.Now())
	svc := newPaymentServiceForTest(t, orderSvc)

	payment, err := svc.CreateVNPayPaymentURL(order.ID, models.Money{}, "10.0.0.8")
	if err != nil {
		t.Fatalf("create payment url failed: %v", err)
	}
	if !payment.Discount.IsZero() || payment.Amount.StringFixed(0) != "300000" {
		t.Fatalf("unexpected payable amounts: %+v", payment)
	}
	parsed, err := url.Parse(payment.PaymentURL)
	if err != nil {
		t.Fatalf("parse url failed: %v", err)
	}
	values := parsed.Query()
	if values.Get("vnp_Amount") != "30000000" {
		t.Fatalf("expected amount 30000000, got %s", values.Get("vnp_Amount"))
	}
	if values.Get("vnp_TxnRef") != order.ID || values.Get("vnp_IpAddr") != "10.0.0.8" {
		t.Fatalf("unexpected params: %v", values)
	}
	params, _ := vnpay.ParseReturn(values)
	if err := vnpay.VerifySignature(params, "SECRETKEY"); err != nil {
		t.Fatalf("generated url should verify: %v", err)
	}

	stored, err := orderSvc.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if stored.PaymentMethod != constants.PaymentMethodVNPay {
		t.Fatalf("payment method should switch to VNPAY, got %s", stored.PaymentMethod)
	}
}

func TestCreateVNPayPaymentURLChargesTotalMinusVoucherDiscount(t *testing.T) {
	db := setupServiceTestDB(t)
	customer := createTestCustomer(t, db, "vnpay-voucher@example.com")
	order := createTestOrder(t, db, "13012026100000", customer.ID, 600000)
	createTestVoucher(t, db, sale10Voucher())
	if _, err := newVoucherServiceForTest(t, db, time.Now()).Apply("SALE10", customer.ID, order.ID); err != nil {
		t.Fatalf("apply voucher failed: %v", err)
	}
	svc := newPaymentServiceForTest(t, newOrderServiceForTest(t, db, time.Now()))

	payment, err := svc.CreateVNPayPaymentURL(order.ID, models.Money{}, "10.0.0.9")
	if err != nil {
		t.Fatalf("create payment url failed: %v", err)
	}
	if payment.Discount.StringFixed(0) != "50000" || payment.Amount.StringFixed(0) != "550000" {
		t.Fatalf("expected discount 50000 and amount 550000, got %+v", payment)
	}
	parsed, err := url.Parse(payment.PaymentURL)
	if err != nil {
		t.Fatalf("parse url failed: %v", err)
	}
	if got := parsed.Query().Get("vnp_Amount"); got != "55000000" {
		t.Fatalf("expected vnp_Amount 55000000, got %s", got)
	}

	if _, err := svc.CreateVNPayPaymentURL(order.ID, models.NewMoneyFromInt(600000), "10.0.0.9"); !errors.Is(err, ErrPaymentAmount) {
		t.Fatalf("full total should be rejected once a voucher applies, got %v", err)
	}
	if _, err := svc.CreateVNPayPaymentURL(order.ID, models.NewMoneyFromInt(550000), "10.0.0.9"); err != nil {
		t.Fatalf("matching amount should be accepted: %v", err)
	}
}

func TestCreateVNPayPaymentURLRequiresConfig(t *testing.T) {
	db := setupServiceTestDB(t)
	orderSvc := newOrderServiceForTest(t, db, time.Now())
	svc := NewPaymentService(newTestConfig(), orderSvc)
	if _, err := svc.CreateVNPayPaymentURL("x", models.Money{}, ""); !errors.Is(err, ErrPaymentConfigMissing) {
		t.Fatalf("expected ErrPaymentConfigMissing, got %v", err)
	}
}

func TestHandleVNPayReturnSuccessMarksOrderPaid(t *testing.T) {
	db := setupServiceTestDB(t)
	customer := createTestCustomer(t, db, "return@example.com")
	order := createTestOrder(t, db, "12012026100000", customer.ID, 300000)
	orderSvc := newOrderServiceForTest(t, db, time.Now())
	svc := newPaymentServiceForTest(t, orderSvc)

	result, err := svc.HandleVNPayReturn(signedReturnQuery(order.ID, "00", "SECRETKEY"))
	if err != nil {
		t.Fatalf("handle return failed: %v", err)
	}
	if !result.Success || result.Order == nil || !result.Order.IsPaid {
		t.Fatalf("order should be paid: %+v", result)
	}
	if result.Order.OrderStatus != constants.OrderStatusPaymentConfirmed {
		t.Fatalf("unexpected status %s", result.Order.OrderStatus)
	}

	again, err := svc.HandleVNPayReturn(signedReturnQuery(order.ID, "00", "SECRETKEY"))
	if err != nil || !again.Success {
		t.Fatalf("repeated confirmation should succeed, got %v %+v", err, again)
	}
}

func TestHandleVNPayReturnFailureLeavesOrderUnchanged(t *testing.T) {
	db := setupServiceTestDB(t)
	customer := createTestCustomer(t, db, "cancel@example.com")
	order := createTestOrder(t, db, "13012026100000", customer.ID, 300000)
	orderSvc := newOrderServiceForTest(t, db, time.Now())
	svc := newPaymentServiceForTest(t, orderSvc)

	result, err := svc.HandleVNPayReturn(signedReturnQuery(order.ID, "24", "SECRETKEY"))
	if err != nil {
		t.Fatalf("handle return failed: %v", err)
	}
	if result.Success || result.Message != vnpay.ResponseMessage("24") {
		t.Fatalf("unexpected result: %+v", result)
	}
	stored, err := orderSvc.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if stored.IsPaid || stored.OrderStatus != constants.OrderStatusProcessing {
		t.Fatalf("order must stay unpaid: %+v", stored)
	}
}

func TestHandleVNPayReturnRejectsBadSignature(t *testing.T) {
	db := setupServiceTestDB(t)
	customer := createTestCustomer(t, db, "forged@example.com")
	order := createTestOrder(t, db, "14012026100000", customer.ID, 300000)
	orderSvc := newOrderServiceForTest(t, db, time.Now())
	svc := newPaymentServiceForTest(t, orderSvc)

	query := signedReturnQuery(order.ID, "00", "WRONGSECRET")
	if _, err := svc.HandleVNPayReturn(query); !errors.Is(err, ErrPaymentSignature) {
		t.Fatalf("expected ErrPaymentSignature, got %v", err)
	}
	stored, err := orderSvc.GetOrder(order.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if stored.IsPaid {
		t.Fatalf("forged callback must not mark the order paid")
	}
}
