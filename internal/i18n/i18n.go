package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// 支持的语言
const (
	LocaleVI = "vi-VN"
	LocaleEN = "en-US"
	LocaleZH = "zh-CN"

	DefaultLocale = LocaleVI
)

// NormalizeLocale 归一化语言标识，未知语言回退默认语言
func NormalizeLocale(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if idx := strings.IndexAny(value, ",;"); idx >= 0 {
		value = strings.TrimSpace(value[:idx])
	}
	switch {
	case value == "":
		return DefaultLocale
	case strings.HasPrefix(value, "vi"):
		return LocaleVI
	case strings.HasPrefix(value, "en"):
		return LocaleEN
	case strings.HasPrefix(value, "zh"):
		return LocaleZH
	default:
		return DefaultLocale
	}
}

// ResolveLocale 从请求解析语言（lang 参数 > X-Locale > Accept-Language）
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	if c.Request != nil {
		if header := strings.TrimSpace(c.GetHeader("X-Locale")); header != "" {
			return NormalizeLocale(header)
		}
		if header := strings.TrimSpace(c.GetHeader("Accept-Language")); header != "" {
			return NormalizeLocale(header)
		}
	}
	return DefaultLocale
}

// T 翻译文案，缺失时回退默认语言，再回退为键本身
func T(locale, key string) string {
	if table, ok := catalog[NormalizeLocale(locale)]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := catalog[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化文案
func Sprintf(locale, key string, args ...interface{}) string {
	msg := T(locale, key)
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
