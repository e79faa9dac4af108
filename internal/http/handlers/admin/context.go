package admin

import (
	"strconv"
	"strings"

	handlershared "github.com/webbangiay/internal/http/handlers/shared"
	"github.com/webbangiay/internal/http/response"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (string, bool) {
	return handlershared.GetContextString(c, "admin_id")
}

func currentAdminRole(c *gin.Context) string {
	if value, ok := c.Get("admin_role"); ok {
		if role, ok := value.(string); ok {
			return role
		}
	}
	return ""
}

func parseID(c *gin.Context) (uint, bool) {
	return handlershared.ParseUintParam(c, "id")
}

func pageQuery(c *gin.Context) (int, int) {
	return handlershared.PageQuery(c)
}

func respondPage(c *gin.Context, data interface{}, page, pageSize int, total int64) {
	response.SuccessWithPage(c, data, handlershared.BuildPagination(page, pageSize, total))
}

// formBool 解析 multipart 表单中的可选布尔值
func formBool(c *gin.Context, key string) *bool {
	raw := strings.ToLower(strings.TrimSpace(c.PostForm(key)))
	switch raw {
	case "1", "true", "on", "yes":
		v := true
		return &v
	case "0", "false", "off", "no":
		v := false
		return &v
	default:
		return nil
	}
}

func parseFormUint(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}
