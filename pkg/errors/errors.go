package errors

import "errors"

// ── 存储层冲突哨兵错误 ──
// 冲突检查与写入在同一事务内完成（SELECT ... FOR UPDATE），
// 由 Repository 层返回，Service 层转译为业务错误。

// ErrShiftConflict 同一人员同一日期已存在未取消的班次
var ErrShiftConflict = errors.New("该人员当日已有未取消的排班")

// ErrLeaveOverlap 与该人员已有的未驳回请假区间重叠
var ErrLeaveOverlap = errors.New("请假日期与已有申请重叠")
