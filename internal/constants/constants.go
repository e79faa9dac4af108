package constants

// 订单状态常量
const (
	OrderStatusProcessing       = "PROCESSING"
	OrderStatusPaymentConfirmed = "PAYMENT_CONFIRMED"
)

// 支付方式常量
const (
	PaymentMethodCreditCard     = "CREDIT_CARD"
	PaymentMethodDebitCard      = "DEBIT_CARD"
	PaymentMethodPaypal         = "PAYPAL"
	PaymentMethodBankTransfer   = "BANK_TRANSFER"
	PaymentMethodCashOnDelivery = "CASH_ON_DELIVERY"
	PaymentMethodVNPay          = "VNPAY"
)

// 优惠券折扣类型
const (
	DiscountTypePercentage = "PERCENTAGE"
	DiscountTypeFixed      = "FIXED"
)

// 优惠券使用条件类型
const (
	ConditionAllCustomers   = "ALL_CUSTOMERS"
	ConditionFirstOrder     = "FIRST_ORDER"
	ConditionTotalPurchased = "TOTAL_PURCHASED"
	ConditionOrderValue     = "ORDER_VALUE"
	ConditionSpecificDate   = "SPECIFIC_DATE"
)

// 账号角色
const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
	RoleCustomer = "CUSTOMER"
)

// 子分类适用性别
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
)

// 上传目录
const (
	UploadFolderBanner            = "banner"
	UploadFolderBrand             = "brand"
	UploadFolderProductColor      = "product_color"
	UploadFolderProductColorImage = "product_color"
	UploadFolderAvatar            = "avatar"
	UploadFolderCommon            = "common"
)

// 统计视图粒度
const (
	StatisticsViewDay   = "day"
	StatisticsViewMonth = "month"
	StatisticsViewYear  = "year"
)

// 异步队列
const (
	QueueDefault = "default"
	QueueLow     = "low"

	TaskOrderPaid         = "order:paid"
	TaskUploadCleanup     = "upload:cleanup"
	TaskStatisticsRefresh = "statistics:refresh"
)

// 订单编号时间格式（ddMMyyyyHHmmss）
const OrderIDLayout = "02012006150405"

// VNPayResponseCodeSuccess VNPay 成功响应码
const VNPayResponseCodeSuccess = "00"

// DiscountTypes 全部折扣类型
func DiscountTypes() []interface{} {
	return []interface{}{DiscountTypePercentage, DiscountTypeFixed}
}

// ConditionTypes 全部条件类型
func ConditionTypes() []interface{} {
	return []interface{}{
		ConditionAllCustomers,
		ConditionFirstOrder,
		ConditionTotalPurchased,
		ConditionOrderValue,
		ConditionSpecificDate,
	}
}

// PaymentMethods 全部支付方式
func PaymentMethods() []interface{} {
	return []interface{}{
		PaymentMethodCreditCard,
		PaymentMethodDebitCard,
		PaymentMethodPaypal,
		PaymentMethodBankTransfer,
		PaymentMethodCashOnDelivery,
		PaymentMethodVNPay,
	}
}

// Genders 全部性别取值
func Genders() []interface{} {
	return []interface{}{GenderMale, GenderFemale}
}

// AdminRoles 后台角色
func AdminRoles() []interface{} {
	return []interface{}{RoleAdmin, RoleEmployee}
}
