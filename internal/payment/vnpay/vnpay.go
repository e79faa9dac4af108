package vnpay

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultVersion  = "2.1.0"
	DefaultLocale   = "vn"
	CommandPay      = "pay"
	CurrencyVND     = "VND"
	OrderTypeOther  = "other"
	ResponseSuccess = "00"

	dateLayout        = "20060102150405"
	secureHashKey     = "vnp_SecureHash"
	secureHashTypeKey = "vnp_SecureHashType"
)

var (
	ErrConfigInvalid    = errors.New("vnpay config invalid")
	ErrAmountInvalid    = errors.New("vnpay amount invalid")
	ErrSignatureMissing = errors.New("vnpay signature missing")
	ErrSignatureInvalid = errors.New("vnpay signature invalid")
)

// Config VNPay 商户配置
type Config struct {
	TmnCode       string // 商户编号
	HashSecret    string // 签名密钥
	PayURL        string // 支付网关地址
	ReturnURL     string // 同步返回地址
	Version       string
	Locale        string
	ExpireMinutes int
}

// PaymentInput 生成支付链接输入
type PaymentInput struct {
	TxnRef    string
	Amount    decimal.Decimal // VND
	OrderInfo string
	ClientIP  string
	CreatedAt time.Time
}

// ReturnResult 返回参数解析结果
type ReturnResult struct {
	TxnRef        string
	ResponseCode  string
	TransactionNo string
	BankCode      string
	Amount        decimal.Decimal
	PayDate       string
}

// Success 是否支付成功
func (r ReturnResult) Success() bool {
	return r.ResponseCode == ResponseSuccess
}

// ValidateConfig 校验配置完整性
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.TmnCode) == "" {
		return fmt.Errorf("%w: tmn_code is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.HashSecret) == "" {
		return fmt.Errorf("%w: hash_secret is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.PayURL) == "" {
		return fmt.Errorf("%w: pay_url is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.ReturnURL) == "" {
		return fmt.Errorf("%w: return_url is required", ErrConfigInvalid)
	}
	return nil
}

// BuildPaymentParams 组装支付参数（不含签名）
func BuildPaymentParams(cfg *Config, input PaymentInput) (map[string]string, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrAmountInvalid
	}
	createdAt := input.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	expire := cfg.ExpireMinutes
	if expire <= 0 {
		expire = 15
	}
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		version = DefaultVersion
	}
	locale := strings.TrimSpace(cfg.Locale)
	if locale == "" {
		locale = DefaultLocale
	}
	clientIP := strings.TrimSpace(input.ClientIP)
	if clientIP == "" || clientIP == "::1" {
		clientIP = "127.0.0.1"
	}
	orderInfo := strings.TrimSpace(input.OrderInfo)
	if orderInfo == "" {
		orderInfo = "Thanh toan don hang: " + input.TxnRef
	}

	return map[string]string{
		"vnp_Version":    version,
		"vnp_Command":    CommandPay,
		"vnp_TmnCode":    cfg.TmnCode,
		"vnp_Amount":     FormatAmount(input.Amount),
		"vnp_CurrCode":   CurrencyVND,
		"vnp_TxnRef":     input.TxnRef,
		"vnp_OrderInfo":  orderInfo,
		"vnp_OrderType":  OrderTypeOther,
		"vnp_Locale":     locale,
		"vnp_ReturnUrl":  cfg.ReturnURL,
		"vnp_IpAddr":     clientIP,
		"vnp_CreateDate": createdAt.Format(dateLayout),
		"vnp_ExpireDate": createdAt.Add(time.Duration(expire) * time.Minute).Format(dateLayout),
	}, nil
}

// BuildPaymentURL 生成带签名的支付跳转链接
func BuildPaymentURL(cfg *Config, input PaymentInput) (string, error) {
	params, err := BuildPaymentParams(cfg, input)
	if err != nil {
		return "", err
	}
	query := CanonicalQuery(params)
	signature := Sign(query, cfg.HashSecret)
	separator := "?"
	if strings.Contains(cfg.PayURL, "?") {
		separator = "&"
	}
	return cfg.PayURL + separator + query + "&" + secureHashKey + "=" + signature, nil
}

// CanonicalQuery 按 key 升序、表单编码拼接参数，跳过空值与签名字段
func CanonicalQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key, value := range params {
		if key == secureHashKey || key == secureHashTypeKey || value == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, url.QueryEscape(key)+"="+url.QueryEscape(params[key]))
	}
	return strings.Join(parts, "&")
}

// Sign HMAC-SHA512 签名（小写十六进制）
func Sign(data, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature 校验回调参数签名
func VerifySignature(params map[string]string, secret string) error {
	received := strings.TrimSpace(params[secureHashKey])
	if received == "" {
		return ErrSignatureMissing
	}
	expected := Sign(CanonicalQuery(params), secret)
	if !hmac.Equal([]byte(strings.ToLower(received)), []byte(expected)) {
		return ErrSignatureInvalid
	}
	return nil
}

// ParseReturn 从查询参数中提取 vnp_* 字段
func ParseReturn(values url.Values) (map[string]string, ReturnResult) {
	params := make(map[string]string)
	for key, vals := range values {
		if strings.HasPrefix(key, "vnp_") && len(vals) > 0 {
			params[key] = vals[0]
		}
	}
	result := ReturnResult{
		TxnRef:        strings.TrimSpace(params["vnp_TxnRef"]),
		ResponseCode:  strings.TrimSpace(params["vnp_ResponseCode"]),
		TransactionNo: params["vnp_TransactionNo"],
		BankCode:      params["vnp_BankCode"],
		PayDate:       params["vnp_PayDate"],
	}
	if raw := strings.TrimSpace(params["vnp_Amount"]); raw != "" {
		if amount, err := ParseAmount(raw); err == nil {
			result.Amount = amount
		}
	}
	return params, result
}

// FormatAmount VND 金额转换为网关单位（×100，无小数）
func FormatAmount(amount decimal.Decimal) string {
	return amount.Round(0).Mul(decimal.NewFromInt(100)).StringFixed(0)
}

// ParseAmount 网关金额还原为 VND
func ParseAmount(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrAmountInvalid, err)
	}
	return value.Div(decimal.NewFromInt(100)), nil
}
