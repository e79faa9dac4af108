package shared

import (
	"errors"
	"strings"

	"github.com/webbangiay/internal/http/response"
	"github.com/webbangiay/internal/i18n"
	"github.com/webbangiay/internal/service"

	"github.com/gin-gonic/gin"
)

// MappedError 业务错误到接口错误响应的映射。
type MappedError struct {
	Target error
	Code   int
	Key    string
}

// localizedError 自带文案键与参数的业务错误（如密码策略）。
type localizedError interface {
	error
	Key() string
	Args() []interface{}
}

var serviceErrorRules = []MappedError{
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_failed"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_old_invalid"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_weak"},
	{Target: service.ErrAccountDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
	{Target: service.ErrTokenRevoked, Code: response.CodeUnauthorized, Key: "error.token_revoked"},
	{Target: service.ErrTokenInvalid, Code: response.CodeUnauthorized, Key: "error.token_invalid"},
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaUnavailable, Code: response.CodeInternal, Key: "error.captcha_unavailable"},

	{Target: service.ErrAdminUserNotFound, Code: response.CodeNotFound, Key: "error.admin_not_found"},
	{Target: service.ErrAdminDeleteSelfForbidden, Code: response.CodeBadRequest, Key: "error.admin_delete_self"},
	{Target: service.ErrAdminDeleteLastForbidden, Code: response.CodeBadRequest, Key: "error.admin_last_admin"},
	{Target: service.ErrAdminRoleInvalid, Code: response.CodeBadRequest, Key: "error.admin_role_invalid"},

	{Target: service.ErrBrandNotFound, Code: response.CodeNotFound, Key: "error.brand_not_found"},
	{Target: service.ErrBrandNameExists, Code: response.CodeConflict, Key: "error.brand_name_exists"},
	{Target: service.ErrBrandHasActiveProducts, Code: response.CodeConflict, Key: "error.brand_has_active_products"},
	{Target: service.ErrBrandInUse, Code: response.CodeConflict, Key: "error.brand_in_use"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrCategoryNameExists, Code: response.CodeConflict, Key: "error.category_name_exists"},
	{Target: service.ErrCategoryHasActiveChildren, Code: response.CodeConflict, Key: "error.category_has_active_children"},
	{Target: service.ErrCategoryInUse, Code: response.CodeConflict, Key: "error.category_in_use"},
	{Target: service.ErrSubCategoryNotFound, Code: response.CodeNotFound, Key: "error.subcategory_not_found"},
	{Target: service.ErrSubCategoryHasActive, Code: response.CodeConflict, Key: "error.subcategory_has_active_products"},
	{Target: service.ErrSubCategoryInUse, Code: response.CodeConflict, Key: "error.subcategory_in_use"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrProductBrandInactive, Code: response.CodeBadRequest, Key: "error.product_brand_inactive"},
	{Target: service.ErrProductSubCategoryOff, Code: response.CodeBadRequest, Key: "error.product_subcategory_inactive"},
	{Target: service.ErrProductCategoryInactive, Code: response.CodeBadRequest, Key: "error.product_category_inactive"},
	{Target: service.ErrProductInUse, Code: response.CodeConflict, Key: "error.product_in_use"},
	{Target: service.ErrProductColorNotFound, Code: response.CodeNotFound, Key: "error.product_color_not_found"},
	{Target: service.ErrProductColorInactive, Code: response.CodeBadRequest, Key: "error.product_color_inactive"},
	{Target: service.ErrProductColorInUse, Code: response.CodeConflict, Key: "error.product_color_in_use"},
	{Target: service.ErrProductSizeNotFound, Code: response.CodeNotFound, Key: "error.product_size_not_found"},
	{Target: service.ErrProductSizeInUse, Code: response.CodeConflict, Key: "error.product_size_in_use"},
	{Target: service.ErrProductImageNotFound, Code: response.CodeNotFound, Key: "error.product_image_not_found"},
	{Target: service.ErrBannerNotFound, Code: response.CodeNotFound, Key: "error.banner_not_found"},

	{Target: service.ErrCustomerNotFound, Code: response.CodeNotFound, Key: "error.customer_not_found"},
	{Target: service.ErrCustomerHasOrders, Code: response.CodeConflict, Key: "error.customer_has_orders"},
	{Target: service.ErrGuestNotFound, Code: response.CodeNotFound, Key: "error.guest_not_found"},
	{Target: service.ErrGuestHasOrders, Code: response.CodeConflict, Key: "error.guest_has_orders"},

	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrOrderItemsEmpty, Code: response.CodeBadRequest, Key: "error.order_items_empty"},
	{Target: service.ErrOrderItemInvalid, Code: response.CodeBadRequest, Key: "error.order_item_invalid"},
	{Target: service.ErrGuestInfoRequired, Code: response.CodeBadRequest, Key: "error.guest_info_required"},
	{Target: service.ErrOrderIDExhausted, Code: response.CodeInternal, Key: "error.order_id_exhausted"},
	{Target: service.ErrOrderAlreadyPaid, Code: response.CodeConflict, Key: "error.order_already_paid"},
	{Target: service.ErrPaymentConfigMissing, Code: response.CodeInternal, Key: "error.payment_config_missing"},
	{Target: service.ErrPaymentSignature, Code: response.CodeBadRequest, Key: "error.payment_signature_invalid"},
	{Target: service.ErrPaymentFailed, Code: response.CodeBadRequest, Key: "payment.failed"},
	{Target: service.ErrPaymentAmount, Code: response.CodeBadRequest, Key: "error.payment_amount_mismatch"},

	{Target: service.ErrVoucherNotFound, Code: response.CodeNotFound, Key: "error.voucher_not_found"},
	{Target: service.ErrVoucherCodeExists, Code: response.CodeConflict, Key: "error.voucher_code_exists"},
	{Target: service.ErrVoucherDateRange, Code: response.CodeBadRequest, Key: "error.voucher_date_range"},
	{Target: service.ErrVoucherUsageLimit, Code: response.CodeBadRequest, Key: "error.voucher_usage_limit"},
	{Target: service.ErrVoucherCustomerOnly, Code: response.CodeBadRequest, Key: "error.voucher_customer_only"},
	{Target: service.ErrVoucherInUse, Code: response.CodeConflict, Key: "error.voucher_in_use"},
	{Target: service.ErrVoucherInvalid, Code: response.CodeBadRequest, Key: "error.voucher_invalid"},

	{Target: service.ErrStatisticsRangeInvalid, Code: response.CodeBadRequest, Key: "error.statistics_range_invalid"},
	{Target: service.ErrStatisticsViewInvalid, Code: response.CodeBadRequest, Key: "error.statistics_view_invalid"},
	{Target: service.ErrFileMissing, Code: response.CodeBadRequest, Key: "error.file_missing"},
	{Target: service.ErrFileTooLarge, Code: response.CodeBadRequest, Key: "error.file_too_large"},
	{Target: service.ErrFileTypeNotAllowed, Code: response.CodeBadRequest, Key: "error.file_type_not_allowed"},
	{Target: service.ErrFileDimensionTooLarge, Code: response.CodeBadRequest, Key: "error.file_dimension_too_large"},
	{Target: service.ErrUploadFolderInvalid, Code: response.CodeBadRequest, Key: "error.upload_folder_invalid"},

	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},
}

// RespondServiceError 将 service 层错误转换为统一响应，未识别的错误按 500 处理并记录日志。
func RespondServiceError(c *gin.Context, err error) {
	RespondMappedError(c, err, nil, response.CodeInternal, "error.internal")
}

// RespondMappedError 优先匹配 extra 规则，再匹配通用规则，最后回退 fallback。
func RespondMappedError(c *gin.Context, err error, extra []MappedError, fallbackCode int, fallbackKey string) {
	if err == nil {
		return
	}
	locale := i18n.ResolveLocale(c)

	var rejected *service.VoucherRejectedError
	if errors.As(err, &rejected) && rejected.Validation != nil {
		msg := rejected.Validation.Localize(locale)
		if msg == "" {
			msg = i18n.T(locale, "error.voucher_invalid")
		}
		RespondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}
	var localized localizedError
	if errors.As(err, &localized) {
		RespondErrorWithMsg(c, response.CodeBadRequest, i18n.Sprintf(locale, localized.Key(), localized.Args()...), nil)
		return
	}
	if errors.Is(err, service.ErrInvalidInput) {
		msg := i18n.T(locale, "error.bad_request")
		if detail := invalidInputDetail(err); detail != "" {
			msg = msg + ": " + detail
		}
		RespondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return
	}

	for _, group := range [][]MappedError{extra, serviceErrorRules} {
		for _, rule := range group {
			if errors.Is(err, rule.Target) {
				RespondError(c, rule.Code, rule.Key, nil)
				return
			}
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

func invalidInputDetail(err error) string {
	prefix := service.ErrInvalidInput.Error() + ": "
	msg := err.Error()
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimSpace(strings.TrimPrefix(msg, prefix))
	}
	return ""
}
