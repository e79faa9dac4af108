package models

import "time"

// VoucherUsage 优惠券使用记录（创建后不再修改）
type VoucherUsage struct {
	ID             uint      `gorm:"primarykey" json:"id"`                                               // 主键
	VoucherID      uint      `gorm:"not null;uniqueIndex:idx_voucher_customer" json:"voucher_id"`        // 优惠券ID
	CustomerID     uint      `gorm:"not null;uniqueIndex:idx_voucher_customer;index" json:"customer_id"` // 客户ID
	OrderID        string    `gorm:"type:varchar(32);not null;index" json:"order_id"`                    // 订单ID
	DiscountAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`       // 优惠金额
	UsedAt         time.Time `gorm:"not null;index" json:"used_at"`                                      // 使用时间

	Voucher *Voucher `gorm:"foreignKey:VoucherID" json:"voucher,omitempty"` // 优惠券
}

// TableName 指定表名
func (VoucherUsage) TableName() string {
	return "voucher_usages"
}
