package utils

// Server-side strings only: short user-facing messages for API errors.

var translations = map[string]map[string]string{
	"en": {
		"health.ok":                "ok",
		"error.invalid_body":       "Invalid request body",
		"error.missing_fields":     "Missing required fields",
		"error.analysis_failed":    "Failed to generate analysis",
		"error.answer_failed":      "Unable to answer this question. Please try again.",
		"error.upload_failed":      "Failed to initialize upload",
		"error.invalid_duration":   "Video duration is out of range",
		"error.unauthorized":       "Unauthorized",
		"error.rate_limited":       "Too many requests, slow down",
		"error.method_not_allowed": "Method not allowed",
	},
	"zh": {
		"health.ok":                "好的",
		"error.invalid_body":       "请求内容无效",
		"error.missing_fields":     "缺少必填字段",
		"error.analysis_failed":    "无法生成分析",
		"error.answer_failed":      "暂时无法回答该问题，请重试。",
		"error.upload_failed":      "上传初始化失败",
		"error.invalid_duration":   "视频时长超出范围",
		"error.unauthorized":       "未授权",
		"error.rate_limited":       "请求过于频繁，请稍后再试",
		"error.method_not_allowed": "不支持的请求方法",
	},
}

// T returns the translated string for key in locale; falls back to English.
func T(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := translations["en"][key]; ok {
		return v
	}
	return key
}
