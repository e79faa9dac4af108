package vnpay

import "strings"

var responseMessages = map[string]string{
	"00": "Giao dịch thành công",
	"07": "Trừ tiền thành công. Giao dịch bị nghi ngờ (liên quan tới lừa đảo, giao dịch bất thường).",
	"09": "Thẻ/Tài khoản của khách hàng chưa đăng ký dịch vụ InternetBanking tại ngân hàng.",
	"10": "Khách hàng xác thực thông tin thẻ/tài khoản không đúng quá 3 lần.",
	"11": "Đã hết hạn chờ thanh toán. Xin quý khách vui lòng thực hiện lại giao dịch.",
	"12": "Thẻ/Tài khoản của khách hàng bị khóa.",
	"13": "Quý khách nhập sai mật khẩu xác thực giao dịch (OTP).",
	"24": "Khách hàng hủy giao dịch.",
	"51": "Tài khoản của quý khách không đủ số dư để thực hiện giao dịch.",
	"65": "Tài khoản của quý khách đã vượt quá hạn mức giao dịch trong ngày.",
	"75": "Ngân hàng thanh toán đang bảo trì.",
	"79": "Quý khách nhập sai mật khẩu thanh toán quá số lần quy định.",
	"99": "Các lỗi khác.",
}

// ResponseMessage 网关响应码对应的提示文案，未知响应码按 99 处理
func ResponseMessage(code string) string {
	if msg, ok := responseMessages[strings.TrimSpace(code)]; ok {
		return msg
	}
	return responseMessages["99"]
}
