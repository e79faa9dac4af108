package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表（客户订单与游客订单二选一）
type Order struct {
	ID            string     `gorm:"primarykey;type:varchar(32)" json:"id"`                    // 订单编号 ddMMyyyyHHmmss[-NN]
	CustomerID    *uint      `gorm:"index" json:"customer_id,omitempty"`                       // 客户ID
	GuestID       *uint      `gorm:"index" json:"guest_id,omitempty"`                          // 游客ID
	TotalPrice    Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // 订单总额
	IsPaid        bool       `gorm:"not null;default:false;index" json:"is_paid"`              // 是否已支付
	PaymentMethod string     `gorm:"type:varchar(30);not null" json:"payment_method"`          // 支付方式
	OrderStatus   string     `gorm:"type:varchar(30);not null;index" json:"order_status"`      // 订单状态
	OrderNote     string     `gorm:"type:varchar(1000)" json:"order_note"`                     // 订单备注
	PaidAt        *time.Time `gorm:"index" json:"paid_at"`                                     // 支付时间
	CreatedAt     time.Time  `gorm:"index" json:"created_at"`                                  // 创建时间
	UpdatedAt     time.Time  `json:"updated_at"`                                               // 更新时间

	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // 客户
	Guest    *Guest      `gorm:"foreignKey:GuestID" json:"guest,omitempty"`       // 游客
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`       // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate 时间列统一转为 UTC 存储
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.CreatedAt.IsZero() {
		o.CreatedAt = tx.NowFunc()
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.CreatedAt
	}
	o.CreatedAt = o.CreatedAt.UTC()
	o.UpdatedAt = o.UpdatedAt.UTC()
	if o.PaidAt != nil {
		paidAt := o.PaidAt.UTC()
		o.PaidAt = &paidAt
	}
	return nil
}
