package service

import "errors"

// 通用
var (
	ErrNotFound     = errors.New("资源不存在")
	ErrInvalidInput = errors.New("参数错误")
)

// 认证
var (
	ErrInvalidCredentials = errors.New("账号或密码错误")
	ErrInvalidPassword    = errors.New("原密码错误")
	ErrWeakPassword       = errors.New("密码强度不足")
	ErrAccountDisabled    = errors.New("账号已停用")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrTokenInvalid       = errors.New("无效的 token")
	ErrTokenRevoked       = errors.New("token 已失效")
	ErrCaptchaRequired    = errors.New("请填写验证码")
	ErrCaptchaInvalid     = errors.New("验证码错误")
	ErrCaptchaUnavailable = errors.New("验证码服务不可用")
)

// 后台用户
var (
	ErrAdminUserNotFound        = errors.New("后台用户不存在")
	ErrAdminDeleteSelfForbidden = errors.New("不能删除当前登录账号")
	ErrAdminDeleteLastForbidden = errors.New("至少保留一个管理员")
	ErrAdminRoleInvalid         = errors.New("角色无效")
)

// 商品目录
var (
	ErrBrandNotFound             = errors.New("品牌不存在")
	ErrBrandNameExists           = errors.New("品牌名称已存在")
	ErrBrandHasActiveProducts    = errors.New("品牌下仍有上架商品")
	ErrBrandInUse                = errors.New("品牌下仍有商品")
	ErrCategoryNotFound          = errors.New("分类不存在")
	ErrCategoryNameExists        = errors.New("分类名称已存在")
	ErrCategoryHasActiveChildren = errors.New("分类下仍有启用的子分类")
	ErrCategoryInUse             = errors.New("分类下仍有子分类")
	ErrSubCategoryNotFound       = errors.New("子分类不存在")
	ErrSubCategoryHasActive      = errors.New("子分类下仍有上架商品")
	ErrSubCategoryInUse          = errors.New("子分类下仍有商品")
	ErrProductNotFound           = errors.New("商品不存在")
	ErrProductBrandInactive      = errors.New("商品品牌未启用")
	ErrProductSubCategoryOff     = errors.New("商品子分类未启用")
	ErrProductCategoryInactive   = errors.New("商品分类未启用")
	ErrProductInUse              = errors.New("商品已被订单引用")
	ErrProductColorNotFound      = errors.New("颜色款不存在")
	ErrProductColorInactive      = errors.New("颜色款未启用")
	ErrProductColorInUse         = errors.New("颜色款已被订单引用")
	ErrProductSizeNotFound       = errors.New("尺码不存在")
	ErrProductSizeInUse          = errors.New("尺码已被订单引用")
	ErrProductImageNotFound      = errors.New("颜色款附图不存在")
	ErrBannerNotFound            = errors.New("Banner 不存在")
)

// 客户与游客
var (
	ErrCustomerNotFound  = errors.New("客户不存在")
	ErrCustomerHasOrders = errors.New("客户已有订单")
	ErrGuestNotFound     = errors.New("游客不存在")
	ErrGuestHasOrders    = errors.New("游客已有订单")
)

// 订单与支付
var (
	ErrOrderNotFound        = errors.New("订单不存在")
	ErrOrderItemsEmpty      = errors.New("订单项不能为空")
	ErrOrderItemInvalid     = errors.New("订单项无效")
	ErrGuestInfoRequired    = errors.New("游客下单需要填写联系信息")
	ErrOrderIDExhausted     = errors.New("订单编号生成失败")
	ErrOrderAlreadyPaid     = errors.New("订单已支付")
	ErrPaymentConfigMissing = errors.New("支付网关未配置")
	ErrPaymentSignature     = errors.New("支付签名校验失败")
	ErrPaymentFailed        = errors.New("支付未成功")
	ErrPaymentAmount        = errors.New("支付金额与应付金额不一致")
)

// 优惠券
var (
	ErrVoucherNotFound     = errors.New("优惠券不存在")
	ErrVoucherCodeExists   = errors.New("优惠码已存在")
	ErrVoucherInvalid      = errors.New("优惠券不可用")
	ErrVoucherDateRange    = errors.New("优惠券日期范围无效")
	ErrVoucherUsageLimit   = errors.New("优惠券使用次数已达上限")
	ErrVoucherCustomerOnly = errors.New("优惠券仅限注册客户使用")
	ErrVoucherInUse        = errors.New("优惠券已有使用记录")
)

// 统计与上传
var (
	ErrStatisticsRangeInvalid = errors.New("统计时间范围无效")
	ErrStatisticsViewInvalid  = errors.New("统计粒度无效")
	ErrFileMissing            = errors.New("文件不能为空")
	ErrFileTooLarge           = errors.New("文件过大")
	ErrFileTypeNotAllowed     = errors.New("文件类型不支持")
	ErrFileDimensionTooLarge  = errors.New("图片尺寸过大")
	ErrUploadFolderInvalid    = errors.New("上传目录无效")
)
