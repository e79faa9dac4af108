package models

// OrderItem 订单项（单价为下单时快照）
type OrderItem struct {
	ID            uint   `gorm:"primarykey" json:"id"`                                    // 主键
	OrderID       string `gorm:"type:varchar(32);index;not null" json:"order_id"`         // 订单编号
	ProductSizeID uint   `gorm:"index;not null" json:"product_size_id"`                   // 尺码ID
	Quantity      int    `gorm:"not null" json:"quantity"`                                // 数量
	UnitPrice     Money  `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"` // 单价

	ProductSize *ProductSize `gorm:"foreignKey:ProductSizeID" json:"product_size,omitempty"` // 尺码
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
