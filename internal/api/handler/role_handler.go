package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jawal7886/doctor-roaster/internal/dto"
	"github.com/jawal7886/doctor-roaster/internal/service"
	"github.com/jawal7886/doctor-roaster/pkg/response"
)

// RoleHandler 角色参照数据 HTTP 处理器
type RoleHandler struct {
	roleSvc service.RoleService
}

// NewRoleHandler 创建 RoleHandler
func NewRoleHandler(roleSvc service.RoleService) *RoleHandler {
	return &RoleHandler{roleSvc: roleSvc}
}

// ListRoles 获取角色列表
// GET /api/roles
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, roles)
}

// GetRole 获取角色详情
// GET /api/roles/:id
func (h *RoleHandler) GetRole(c *gin.Context) {
	role, err := h.roleSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleRoleError(c, err)
		return
	}

	response.OK(c, role)
}

// CreateRole 创建角色
// POST /api/roles
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	role, err := h.roleSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleRoleError(c, err)
		return
	}

	response.Created(c, "角色创建成功", role)
}

// UpdateRole 更新角色
// PUT /api/roles/:id
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	role, err := h.roleSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleRoleError(c, err)
		return
	}

	response.OKMessage(c, "角色更新成功", role)
}

// DeleteRole 删除角色
// DELETE /api/roles/:id
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	if err := h.roleSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleRoleError(c, err)
		return
	}

	response.OKMessage(c, "角色已删除", nil)
}

// handleRoleError 角色模块业务错误到 HTTP 状态的映射
func (h *RoleHandler) handleRoleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoleNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrRoleNameExists):
		response.ValidationFailed(c, map[string]string{"display_name": err.Error()})
	case errors.Is(err, service.ErrRoleInUse):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c)
	}
}
