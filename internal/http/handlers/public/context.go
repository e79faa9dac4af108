package public

import (
	handlershared "github.com/webbangiay/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// getCustomerID 必须登录的接口读取客户 ID
func getCustomerID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "customer_id", "error.id_invalid", "error.internal")
}

// optionalCustomerID 可选登录的接口读取客户 ID，未登录返回 0
func optionalCustomerID(c *gin.Context) uint {
	value, exists := c.Get("customer_id")
	if !exists {
		return 0
	}
	if id, ok := value.(uint); ok {
		return id
	}
	return 0
}

func parseID(c *gin.Context) (uint, bool) {
	return handlershared.ParseUintParam(c, "id")
}
