package vnpay

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		TmnCode:       "DEMOTMN1",
		HashSecret:    "SECRETKEY",
		PayURL:        "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:     "http://localhost:3000/vnpay-return",
		ExpireMinutes: 15,
	}
}

func TestCanonicalQuerySortsEncodesAndSkipsEmpty(t *testing.T) {
	params := map[string]string{
		"vnp_TxnRef":         "01012026120000",
		"vnp_OrderInfo":      "Thanh toan don hang: 01012026120000",
		"vnp_Amount":         "10000000",
		"vnp_BankCode":       "",
		"vnp_SecureHash":     "ignored",
		"vnp_SecureHashType": "HmacSHA512",
	}
	got := CanonicalQuery(params)
	assert.Equal(t, "vnp_Amount=10000000&vnp_OrderInfo=Thanh+toan+don+hang%3A+01012026120000&vnp_TxnRef=01012026120000", got)
}

func TestSignKnownVector(t *testing.T) {
	data := "vnp_Amount=10000000&vnp_OrderInfo=Thanh+toan+don+hang%3A+01012026120000&vnp_TxnRef=01012026120000"
	want := "78ed10018dee80598385c0b99205301877f168f5c2e38836c5ba03f9866a06c868398afbafe27f04b793d0a1a60246cf631c84d930c7c3551c86964aa6d109d9"
	assert.Equal(t, want, Sign(data, "SECRETKEY"))
}

func TestBuildPaymentURLRoundTrip(t *testing.T) {
	cfg := testConfig()
	createdAt := time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)
	payURL, err := BuildPaymentURL(cfg, PaymentInput{
		TxnRef:    "01012026120000",
		Amount:    decimal.NewFromInt(450000),
		ClientIP:  "::1",
		CreatedAt: createdAt,
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(payURL, cfg.PayURL+"?"))

	parsed, err := url.Parse(payURL)
	require.NoError(t, err)
	values := parsed.Query()
	assert.Equal(t, "45000000", values.Get("vnp_Amount"))
	assert.Equal(t, "2.1.0", values.Get("vnp_Version"))
	assert.Equal(t, "pay", values.Get("vnp_Command"))
	assert.Equal(t, "VND", values.Get("vnp_CurrCode"))
	assert.Equal(t, "vn", values.Get("vnp_Locale"))
	assert.Equal(t, "127.0.0.1", values.Get("vnp_IpAddr"))
	assert.Equal(t, "Thanh toan don hang: 01012026120000", values.Get("vnp_OrderInfo"))
	assert.Equal(t, "20260101120000", values.Get("vnp_CreateDate"))
	assert.Equal(t, "20260101121500", values.Get("vnp_ExpireDate"))

	params, result := ParseReturn(values)
	require.NoError(t, VerifySignature(params, cfg.HashSecret))
	assert.Equal(t, "01012026120000", result.TxnRef)
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(450000)))

	params["vnp_Amount"] = "100"
	assert.ErrorIs(t, VerifySignature(params, cfg.HashSecret), ErrSignatureInvalid)
}

func TestVerifySignatureAcceptsUppercaseHash(t *testing.T) {
	params := map[string]string{
		"vnp_TxnRef":       "02012026080000",
		"vnp_ResponseCode": "00",
	}
	params["vnp_SecureHash"] = strings.ToUpper(Sign(CanonicalQuery(params), "SECRETKEY"))
	assert.NoError(t, VerifySignature(params, "SECRETKEY"))

	delete(params, "vnp_SecureHash")
	assert.ErrorIs(t, VerifySignature(params, "SECRETKEY"), ErrSignatureMissing)
}

func TestBuildPaymentParamsRejectsInvalidInput(t *testing.T) {
	_, err := BuildPaymentParams(&Config{}, PaymentInput{TxnRef: "x", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrConfigInvalid)

	_, err = BuildPaymentParams(testConfig(), PaymentInput{TxnRef: "x", Amount: decimal.Zero})
	assert.ErrorIs(t, err, ErrAmountInvalid)
}

func TestResponseMessage(t *testing.T) {
	assert.Equal(t, "Giao dịch thành công", ResponseMessage("00"))
	assert.Equal(t, "Khách hàng hủy giao dịch.", ResponseMessage("24"))
	assert.Equal(t, ResponseMessage("99"), ResponseMessage("42"))
}
