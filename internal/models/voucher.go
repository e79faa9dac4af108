package models

import "time"

// Voucher 优惠券
type Voucher struct {
	ID             uint      `gorm:"primarykey" json:"id"`                                         // 主键
	Code           string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`            // 优惠码
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`                       // 名称
	Description    string    `gorm:"type:varchar(500)" json:"description"`                         // 描述
	DiscountType   string    `gorm:"type:varchar(20);not null" json:"discount_type"`               // 折扣类型 PERCENTAGE/FIXED
	DiscountValue  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"discount_value"`  // 折扣值
	MaxDiscount    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"max_discount"`    // 最大优惠（0 不限）
	MinOrderValue  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"min_order_value"` // 最低订单金额（0 不限）
	ConditionType  string    `gorm:"type:varchar(30);not null;index" json:"condition_type"`        // 使用条件
	ConditionValue Money     `gorm:"type:decimal(20,2);not null;default:0" json:"condition_value"` // 条件阈值
	StartDate      time.Time `gorm:"not null;index" json:"start_date"`                             // 生效日期（含）
	EndDate        time.Time `gorm:"not null;index" json:"end_date"`                               // 失效日期（含）
	UsageLimit     int       `gorm:"not null;default:0" json:"usage_limit"`                        // 总使用次数（0 不限）
	UsedCount      int       `gorm:"not null;default:0" json:"used_count"`                         // 已使用次数
	IsActive       bool      `gorm:"not null;index" json:"is_active"`                              // 是否启用
	CreatedAt      time.Time `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt      time.Time `json:"updated_at"`                                                   // 更新时间
}

// TableName 指定表名
func (Voucher) TableName() string {
	return "vouchers"
}
