package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":                   LocaleVI,
		"vi":                 LocaleVI,
		"en-GB,en;q=0.9":     LocaleEN,
		"zh-TW":              LocaleZH,
		"fr-FR":              LocaleVI,
		"  EN-us ; q=0.8   ": LocaleEN,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeLocale(raw), "raw=%q", raw)
	}
}

func TestResolveLocalePriority(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?lang=zh", nil)
	c.Request.Header.Set("X-Locale", "en")
	c.Request.Header.Set("Accept-Language", "vi")
	assert.Equal(t, LocaleZH, ResolveLocale(c))

	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Accept-Language", "en-US,en;q=0.9")
	assert.Equal(t, LocaleEN, ResolveLocale(c))

	assert.Equal(t, DefaultLocale, ResolveLocale(nil))
}

func TestTranslateFallbacks(t *testing.T) {
	require.NotEmpty(t, catalog[LocaleVI]["error.bad_request"])
	assert.Equal(t, catalog[LocaleEN]["error.bad_request"], T(LocaleEN, "error.bad_request"))
	assert.Equal(t, "error.not_a_real_key", T(LocaleEN, "error.not_a_real_key"))
	assert.Equal(t, "Voucher hợp lệ", T(LocaleVI, "voucher.valid"))
}

func TestSprintfFormatsArgs(t *testing.T) {
	msg := Sprintf(LocaleVI, "voucher.min_order_value", "100000")
	assert.Equal(t, "Đơn hàng phải có giá trị tối thiểu 100000 VND", msg)
}

func TestCatalogKeysConsistent(t *testing.T) {
	base := catalog[DefaultLocale]
	for _, locale := range []string{LocaleEN, LocaleZH} {
		table := catalog[locale]
		for key := range base {
			_, ok := table[key]
			assert.True(t, ok, "locale %s missing key %s", locale, key)
		}
	}
}
