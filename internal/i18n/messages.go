package i18n

// catalog 文案表，键在各语言间保持一致
var catalog = map[string]map[string]string{
	LocaleVI: {
		"error.bad_request":                    "Tham số không hợp lệ",
		"error.not_found":                      "Không tìm thấy tài nguyên",
		"error.internal":                       "Lỗi hệ thống, vui lòng thử lại sau",
		"error.unauthorized":                   "Chưa đăng nhập hoặc phiên đã hết hạn",
		"error.forbidden":                      "Bạn không có quyền thực hiện thao tác này",
		"error.rate_limited":                   "Thao tác quá nhanh, vui lòng thử lại sau %d giây",
		"error.login_too_many":                 "Đăng nhập sai quá nhiều lần, vui lòng thử lại sau %d giây",
		"error.rate_limit_unavailable":         "Dịch vụ giới hạn truy cập không khả dụng",
		"error.id_invalid":                     "ID không hợp lệ",
		"error.auth_header_missing":            "Thiếu thông tin xác thực",
		"error.auth_header_invalid":            "Thông tin xác thực không hợp lệ",
		"error.jwt_secret_missing":             "Chưa cấu hình khóa JWT",
		"error.token_invalid":                  "Token không hợp lệ",
		"error.token_revoked":                  "Phiên đăng nhập đã bị thu hồi, vui lòng đăng nhập lại",
		"error.user_disabled":                  "Tài khoản đã bị vô hiệu hóa",
		"error.login_failed":                   "Email hoặc mật khẩu không đúng",
		"error.password_old_invalid":           "Mật khẩu cũ không đúng",
		"error.password_weak":                  "Mật khẩu không đủ mạnh",
		"error.password_min_length":            "Mật khẩu phải có ít nhất %d ký tự",
		"error.password_max_length":            "Mật khẩu không được vượt quá %d ký tự",
		"error.password_require_upper":         "Mật khẩu phải chứa chữ in hoa",
		"error.password_require_lower":         "Mật khẩu phải chứa chữ thường",
		"error.password_require_number":        "Mật khẩu phải chứa chữ số",
		"error.password_require_special":       "Mật khẩu phải chứa ký tự đặc biệt",
		"error.email_exists":                   "Email đã được sử dụng",
		"error.captcha_required":               "Vui lòng nhập mã xác nhận",
		"error.captcha_invalid":                "Mã xác nhận không đúng",
		"error.captcha_unavailable":            "Dịch vụ mã xác nhận không khả dụng",
		"error.admin_not_found":                "Không tìm thấy người dùng quản trị",
		"error.admin_delete_self":              "Không thể xóa tài khoản đang đăng nhập",
		"error.admin_last_admin":               "Hệ thống phải còn ít nhất một quản trị viên",
		"error.admin_role_invalid":             "Vai trò không hợp lệ",
		"error.authz_policy_invalid":           "Chính sách phân quyền không hợp lệ",
		"error.brand_not_found":                "Không tìm thấy thương hiệu",
		"error.brand_name_exists":              "Tên thương hiệu đã tồn tại",
		"error.brand_has_active_products":      "Thương hiệu còn sản phẩm đang hoạt động",
		"error.brand_in_use":                   "Thương hiệu đang có sản phẩm, không thể xóa",
		"error.category_not_found":             "Không tìm thấy danh mục",
		"error.category_name_exists":           "Tên danh mục đã tồn tại",
		"error.category_has_active_children":   "Danh mục còn danh mục con đang hoạt động",
		"error.category_in_use":                "Danh mục đang có danh mục con, không thể xóa",
		"error.subcategory_not_found":          "Không tìm thấy danh mục con",
		"error.subcategory_has_active_products": "Danh mục con còn sản phẩm đang hoạt động",
		"error.subcategory_in_use":             "Danh mục con đang có sản phẩm, không thể xóa",
		"error.product_not_found":              "Không tìm thấy sản phẩm",
		"error.product_brand_inactive":         "Thương hiệu của sản phẩm đang bị vô hiệu hóa",
		"error.product_subcategory_inactive":   "Danh mục con của sản phẩm đang bị vô hiệu hóa",
		"error.product_category_inactive":      "Danh mục của sản phẩm đang bị vô hiệu hóa",
		"error.product_in_use":                 "Sản phẩm đã có trong đơn hàng, không thể xóa",
		"error.product_color_not_found":        "Không tìm thấy màu sản phẩm",
		"error.product_color_inactive":         "Màu sản phẩm đang bị vô hiệu hóa",
		"error.product_color_in_use":           "Màu sản phẩm đã có trong đơn hàng, không thể xóa",
		"error.product_size_not_found":         "Không tìm thấy kích cỡ",
		"error.product_size_in_use":            "Kích cỡ đã có trong đơn hàng, không thể xóa",
		"error.product_image_not_found":        "Không tìm thấy ảnh sản phẩm",
		"error.banner_not_found":               "Không tìm thấy banner",
		"error.customer_not_found":             "Không tìm thấy khách hàng",
		"error.customer_has_orders":            "Khách hàng đã có đơn hàng",
		"error.guest_not_found":                "Không tìm thấy khách vãng lai",
		"error.guest_has_orders":               "Khách vãng lai đã có đơn hàng",
		"error.order_not_found":                "Không tìm thấy đơn hàng",
		"error.order_items_empty":              "Đơn hàng phải có ít nhất một sản phẩm",
		"error.order_item_invalid":             "Sản phẩm trong đơn hàng không hợp lệ",
		"error.guest_info_required":            "Vui lòng nhập thông tin người nhận",
		"error.order_id_exhausted":             "Không thể tạo mã đơn hàng, vui lòng thử lại",
		"error.order_already_paid":             "Đơn hàng đã được thanh toán",
		"error.payment_amount_mismatch":        "Số tiền thanh toán không khớp với số tiền cần trả",
		"error.payment_config_missing":         "Cổng thanh toán chưa được cấu hình",
		"error.payment_signature_invalid":      "Chữ ký thanh toán không hợp lệ",
		"payment.success":                      "Thanh toán thành công",
		"payment.failed":                       "Thanh toán không thành công",
		"voucher.valid":                        "Voucher hợp lệ",
		"voucher.not_found":                    "Mã voucher không tồn tại hoặc đã bị vô hiệu hóa",
		"voucher.expired":                      "Voucher đã hết hạn hoặc chưa đến thời gian sử dụng",
		"voucher.usage_limit":                  "Voucher đã hết lượt sử dụng",
		"voucher.min_order_value":              "Đơn hàng phải có giá trị tối thiểu %s VND",
		"voucher.already_used":                 "Bạn đã sử dụng voucher này rồi",
		"voucher.condition_first_order":        "Voucher này chỉ dành cho khách hàng mua lần đầu",
		"voucher.condition_total_purchased":    "Bạn cần mua tổng cộng tối thiểu %s VND để sử dụng voucher này",
		"voucher.condition_order_value":        "Đơn hàng phải có giá trị tối thiểu %s VND",
		"voucher.condition_specific_date":      "Voucher này chỉ có thể sử dụng vào ngày cụ thể",
		"voucher.condition_not_met":            "Không đáp ứng điều kiện sử dụng voucher",
		"error.voucher_not_found":              "Không tìm thấy voucher",
		"error.voucher_code_exists":            "Mã voucher đã tồn tại",
		"error.voucher_invalid":                "Voucher không hợp lệ",
		"error.voucher_date_range":             "Ngày kết thúc phải sau ngày bắt đầu",
		"error.voucher_usage_limit":            "Voucher đã hết lượt sử dụng",
		"error.voucher_customer_only":          "Voucher chỉ dành cho khách hàng đã đăng ký",
		"error.voucher_in_use":                 "Voucher đã có lịch sử sử dụng, không thể xóa",
		"error.statistics_range_invalid":       "Khoảng thời gian thống kê không hợp lệ",
		"error.statistics_view_invalid":        "Kiểu xem thống kê không hợp lệ",
		"error.file_missing":                   "Vui lòng chọn tệp tải lên",
		"error.file_too_large":                 "Tệp tải lên quá lớn",
		"error.file_type_not_allowed":          "Định dạng tệp không được hỗ trợ",
		"error.file_dimension_too_large":       "Kích thước ảnh quá lớn",
		"error.upload_folder_invalid":          "Thư mục tải lên không hợp lệ",
	},
	LocaleEN: {
		"error.bad_request":                    "Invalid request parameters",
		"error.not_found":                      "Resource not found",
		"error.internal":                       "Internal server error, please try again later",
		"error.unauthorized":                   "Unauthorized",
		"error.forbidden":                      "Permission denied",
		"error.rate_limited":                   "Too many requests, please try again in %d seconds",
		"error.login_too_many":                 "Too many login attempts, please try again in %d seconds",
		"error.rate_limit_unavailable":         "Rate limit service unavailable",
		"error.id_invalid":                     "Invalid id",
		"error.auth_header_missing":            "Authorization header is missing",
		"error.auth_header_invalid":            "Invalid authorization header",
		"error.jwt_secret_missing":             "JWT secret is not configured",
		"error.token_invalid":                  "Invalid token",
		"error.token_revoked":                  "Session revoked, please sign in again",
		"error.user_disabled":                  "Account is disabled",
		"error.login_failed":                   "Incorrect email or password",
		"error.password_old_invalid":           "Old password is incorrect",
		"error.password_weak":                  "Password is too weak",
		"error.password_min_length":            "Password must be at least %d characters",
		"error.password_max_length":            "Password must be at most %d characters",
		"error.password_require_upper":         "Password must contain an uppercase letter",
		"error.password_require_lower":         "Password must contain a lowercase letter",
		"error.password_require_number":        "Password must contain a number",
		"error.password_require_special":       "Password must contain a special character",
		"error.email_exists":                   "Email already exists",
		"error.captcha_required":               "Captcha is required",
		"error.captcha_invalid":                "Invalid captcha",
		"error.captcha_unavailable":            "Captcha service unavailable",
		"error.admin_not_found":                "Admin user not found",
		"error.admin_delete_self":              "You cannot delete your own account",
		"error.admin_last_admin":               "At least one active administrator is required",
		"error.admin_role_invalid":             "Invalid role",
		"error.authz_policy_invalid":           "Invalid authorization policy",
		"error.brand_not_found":                "Brand not found",
		"error.brand_name_exists":              "Brand name already exists",
		"error.brand_has_active_products":      "Brand still has active products",
		"error.brand_in_use":                   "Brand still has products",
		"error.category_not_found":             "Category not found",
		"error.category_name_exists":           "Category name already exists",
		"error.category_has_active_children":   "Category still has active subcategories",
		"error.category_in_use":                "Category still has subcategories",
		"error.subcategory_not_found":          "Subcategory not found",
		"error.subcategory_has_active_products": "Subcategory still has active products",
		"error.subcategory_in_use":             "Subcategory still has products",
		"error.product_not_found":              "Product not found",
		"error.product_brand_inactive":         "The product's brand is inactive",
		"error.product_subcategory_inactive":   "The product's subcategory is inactive",
		"error.product_category_inactive":      "The product's category is inactive",
		"error.product_in_use":                 "Product is referenced by orders",
		"error.product_color_not_found":        "Product color not found",
		"error.product_color_inactive":         "Product color is inactive",
		"error.product_color_in_use":           "Product color is referenced by orders",
		"error.product_size_not_found":         "Product size not found",
		"error.product_size_in_use":            "Product size is referenced by orders",
		"error.product_image_not_found":        "Product image not found",
		"error.banner_not_found":               "Banner not found",
		"error.customer_not_found":             "Customer not found",
		"error.customer_has_orders":            "Customer already has orders",
		"error.guest_not_found":                "Guest not found",
		"error.guest_has_orders":               "Guest already has orders",
		"error.order_not_found":                "Order not found",
		"error.order_items_empty":              "Order must contain at least one item",
		"error.order_item_invalid":             "Invalid order item",
		"error.guest_info_required":            "Guest contact information is required",
		"error.order_id_exhausted":             "Unable to allocate an order id, please retry",
		"error.order_already_paid":             "Order is already paid",
		"error.payment_amount_mismatch":        "Payment amount does not match the amount due",
		"error.payment_config_missing":         "Payment gateway is not configured",
		"error.payment_signature_invalid":      "Invalid payment signature",
		"payment.success":                      "Payment successful",
		"payment.failed":                       "Payment failed",
		"voucher.valid":                        "Voucher is valid",
		"voucher.not_found":                    "Voucher code does not exist or is disabled",
		"voucher.expired":                      "Voucher has expired or is not yet active",
		"voucher.usage_limit":                  "Voucher usage limit reached",
		"voucher.min_order_value":              "Order value must be at least %s VND",
		"voucher.already_used":                 "You have already used this voucher",
		"voucher.condition_first_order":        "This voucher is only for first orders",
		"voucher.condition_total_purchased":    "You need total purchases of at least %s VND to use this voucher",
		"voucher.condition_order_value":        "Order value must be at least %s VND",
		"voucher.condition_specific_date":      "This voucher can only be used on a specific date",
		"voucher.condition_not_met":            "Voucher conditions are not met",
		"error.voucher_not_found":              "Voucher not found",
		"error.voucher_code_exists":            "Voucher code already exists",
		"error.voucher_invalid":                "Voucher is not valid",
		"error.voucher_date_range":             "End date must not be before start date",
		"error.voucher_usage_limit":            "Voucher usage limit reached",
		"error.voucher_customer_only":          "Vouchers require a registered customer",
		"error.voucher_in_use":                 "Voucher has usage history",
		"error.statistics_range_invalid":       "Invalid statistics date range",
		"error.statistics_view_invalid":        "Invalid statistics view type",
		"error.file_missing":                   "File is required",
		"error.file_too_large":                 "File is too large",
		"error.file_type_not_allowed":          "File type is not allowed",
		"error.file_dimension_too_large":       "Image dimensions are too large",
		"error.upload_folder_invalid":          "Invalid upload folder",
	},
	LocaleZH: {
		"error.bad_request":                    "请求参数错误",
		"error.not_found":                      "资源不存在",
		"error.internal":                       "服务器内部错误，请稍后重试",
		"error.unauthorized":                   "未登录或登录已过期",
		"error.forbidden":                      "没有操作权限",
		"error.rate_limited":                   "请求过于频繁，请 %d 秒后再试",
		"error.login_too_many":                 "登录尝试次数过多，请 %d 秒后再试",
		"error.rate_limit_unavailable":         "限流服务不可用",
		"error.id_invalid":                     "ID 无效",
		"error.auth_header_missing":            "缺少认证信息",
		"error.auth_header_invalid":            "认证信息格式错误",
		"error.jwt_secret_missing":             "JWT 密钥未配置",
		"error.token_invalid":                  "无效的 token",
		"error.token_revoked":                  "登录状态已失效，请重新登录",
		"error.user_disabled":                  "账号已停用",
		"error.login_failed":                   "邮箱或密码错误",
		"error.password_old_invalid":           "原密码错误",
		"error.password_weak":                  "密码强度不足",
		"error.password_min_length":            "密码长度不能少于 %d 位",
		"error.password_max_length":            "密码长度不能超过 %d 位",
		"error.password_require_upper":         "密码必须包含大写字母",
		"error.password_require_lower":         "密码必须包含小写字母",
		"error.password_require_number":        "密码必须包含数字",
		"error.password_require_special":       "密码必须包含特殊字符",
		"error.email_exists":                   "邮箱已被注册",
		"error.captcha_required":               "请填写验证码",
		"error.captcha_invalid":                "验证码错误",
		"error.captcha_unavailable":            "验证码服务不可用",
		"error.admin_not_found":                "后台用户不存在",
		"error.admin_delete_self":              "不能删除当前登录账号",
		"error.admin_last_admin":               "至少保留一个启用的管理员",
		"error.admin_role_invalid":             "角色无效",
		"error.authz_policy_invalid":           "权限策略无效",
		"error.brand_not_found":                "品牌不存在",
		"error.brand_name_exists":              "品牌名称已存在",
		"error.brand_has_active_products":      "品牌下仍有上架商品",
		"error.brand_in_use":                   "品牌下仍有商品，无法删除",
		"error.category_not_found":             "分类不存在",
		"error.category_name_exists":           "分类名称已存在",
		"error.category_has_active_children":   "分类下仍有启用的子分类",
		"error.category_in_use":                "分类下仍有子分类，无法删除",
		"error.subcategory_not_found":          "子分类不存在",
		"error.subcategory_has_active_products": "子分类下仍有上架商品",
		"error.subcategory_in_use":             "子分类下仍有商品，无法删除",
		"error.product_not_found":              "商品不存在",
		"error.product_brand_inactive":         "商品品牌未启用",
		"error.product_subcategory_inactive":   "商品子分类未启用",
		"error.product_category_inactive":      "商品分类未启用",
		"error.product_in_use":                 "商品已被订单引用，无法删除",
		"error.product_color_not_found":        "颜色款不存在",
		"error.product_color_inactive":         "颜色款未启用",
		"error.product_color_in_use":           "颜色款已被订单引用，无法删除",
		"error.product_size_not_found":         "尺码不存在",
		"error.product_size_in_use":            "尺码已被订单引用，无法删除",
		"error.product_image_not_found":        "颜色款附图不存在",
		"error.banner_not_found":               "Banner 不存在",
		"error.customer_not_found":             "客户不存在",
		"error.customer_has_orders":            "客户已有订单",
		"error.guest_not_found":                "游客不存在",
		"error.guest_has_orders":               "游客已有订单",
		"error.order_not_found":                "订单不存在",
		"error.order_items_empty":              "订单项不能为空",
		"error.order_item_invalid":             "订单项无效",
		"error.guest_info_required":            "游客下单需要填写联系信息",
		"error.order_id_exhausted":             "订单编号生成失败，请重试",
		"error.order_already_paid":             "订单已支付",
		"error.payment_amount_mismatch":        "支付金额与应付金额不一致",
		"error.payment_config_missing":         "支付网关未配置",
		"error.payment_signature_invalid":      "支付签名校验失败",
		"payment.success":                      "支付成功",
		"payment.failed":                       "支付未成功",
		"voucher.valid":                        "优惠券可用",
		"voucher.not_found":                    "优惠码不存在或已停用",
		"voucher.expired":                      "优惠券已过期或未到使用时间",
		"voucher.usage_limit":                  "优惠券已达使用次数上限",
		"voucher.min_order_value":              "订单金额至少为 %s VND",
		"voucher.already_used":                 "您已使用过该优惠券",
		"voucher.condition_first_order":        "该优惠券仅限首单使用",
		"voucher.condition_total_purchased":    "累计消费至少 %s VND 才能使用该优惠券",
		"voucher.condition_order_value":        "订单金额至少为 %s VND",
		"voucher.condition_specific_date":      "该优惠券仅限指定日期使用",
		"voucher.condition_not_met":            "不满足优惠券使用条件",
		"error.voucher_not_found":              "优惠券不存在",
		"error.voucher_code_exists":            "优惠码已存在",
		"error.voucher_invalid":                "优惠券不可用",
		"error.voucher_date_range":             "优惠券日期范围无效",
		"error.voucher_usage_limit":            "优惠券使用次数已达上限",
		"error.voucher_customer_only":          "优惠券仅限注册客户使用",
		"error.voucher_in_use":                 "优惠券已有使用记录，无法删除",
		"error.statistics_range_invalid":       "统计时间范围无效",
		"error.statistics_view_invalid":        "统计粒度无效",
		"error.file_missing":                   "文件不能为空",
		"error.file_too_large":                 "文件过大",
		"error.file_type_not_allowed":          "文件类型不支持",
		"error.file_dimension_too_large":       "图片尺寸过大",
		"error.upload_folder_invalid":          "上传目录无效",
	},
}
