package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jawal7886/doctor-roaster/internal/dto"
	"github.com/jawal7886/doctor-roaster/internal/service"
	"github.com/jawal7886/doctor-roaster/pkg/response"
)

// SpecialtyHandler 专科参照数据 HTTP 处理器
type SpecialtyHandler struct {
	specialtySvc service.SpecialtyService
}

// NewSpecialtyHandler 创建 SpecialtyHandler
func NewSpecialtyHandler(specialtySvc service.SpecialtyService) *SpecialtyHandler {
	return &SpecialtyHandler{specialtySvc: specialtySvc}
}

// ListSpecialties 获取专科列表
// GET /api/specialties
func (h *SpecialtyHandler) ListSpecialties(c *gin.Context) {
	specialties, err := h.specialtySvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, specialties)
}

// GetSpecialty 获取专科详情
// GET /api/specialties/:id
func (h *SpecialtyHandler) GetSpecialty(c *gin.Context) {
	specialty, err := h.specialtySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleSpecialtyError(c, err)
		return
	}

	response.OK(c, specialty)
}

// CreateSpecialty 创建专科
// POST /api/specialties
func (h *SpecialtyHandler) CreateSpecialty(c *gin.Context) {
	var req dto.CreateSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	specialty, err := h.specialtySvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleSpecialtyError(c, err)
		return
	}

	response.Created(c, "专科创建成功", specialty)
}

// UpdateSpecialty 更新专科
// PUT /api/specialties/:id
func (h *SpecialtyHandler) UpdateSpecialty(c *gin.Context) {
	var req dto.UpdateSpecialtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	specialty, err := h.specialtySvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleSpecialtyError(c, err)
		return
	}

	response.OKMessage(c, "专科更新成功", specialty)
}

// DeleteSpecialty 删除专科
// DELETE /api/specialties/:id
func (h *SpecialtyHandler) DeleteSpecialty(c *gin.Context) {
	if err := h.specialtySvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleSpecialtyError(c, err)
		return
	}

	response.OKMessage(c, "专科已删除", nil)
}

// handleSpecialtyError 专科模块业务错误到 HTTP 状态的映射
func (h *SpecialtyHandler) handleSpecialtyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSpecialtyNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrSpecialtyNameExists):
		response.ValidationFailed(c, map[string]string{"name": err.Error()})
	case errors.Is(err, service.ErrSpecialtyInUse):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c)
	}
}
