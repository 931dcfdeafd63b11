package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jawal7886/doctor-roaster/internal/model"
	"github.com/jawal7886/doctor-roaster/internal/repository"
	pkgerrors "github.com/jawal7886/doctor-roaster/pkg/errors"
)

// ── Mock UserRepository ──

// mockUserRepo 持有角色表引用以模拟真实实现中按角色名的 JOIN 查询
type mockUserRepo struct {
	users map[string]*model.User
	roles *mockRoleRepo
	seq   int
}

func newMockUserRepo(roles *mockRoleRepo) *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User), roles: roles}
}

func (m *mockUserRepo) roleName(u *model.User) string {
	if u.Role != nil {
		return u.Role.Name
	}
	if r, ok := m.roles.roles[u.RoleID]; ok {
		return r.Name
	}
	return ""
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%03d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.sorted() {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters) ([]model.User, error) {
	var result []model.User
	for _, u := range m.sorted() {
		if filters != nil {
			if filters.RoleName != "" && m.roleName(u) != filters.RoleName {
				continue
			}
			if filters.DepartmentID != "" && (u.DepartmentID == nil || *u.DepartmentID != filters.DepartmentID) {
				continue
			}
			if filters.Status != "" && u.Status != filters.Status {
				continue
			}
			if filters.Search != "" && !strings.Contains(u.Name, filters.Search) {
				continue
			}
		}
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) ListByDepartment(_ context.Context, departmentID string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.sorted() {
		if u.DepartmentID != nil && *u.DepartmentID == departmentID {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) ListByRoleName(_ context.Context, roleName string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.sorted() {
		if m.roleName(u) == roleName {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) CountDoctors(_ context.Context, departmentID string) (int64, error) {
	var count int64
	for _, u := range m.users {
		if u.Status != model.StatusActive || u.DepartmentID == nil || *u.DepartmentID != departmentID {
			continue
		}
		if isDoctorLike(m.roleName(u)) {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepo) CountActiveDoctors(_ context.Context) (int64, error) {
	var count int64
	for _, u := range m.users {
		if u.Status == model.StatusActive && isDoctorLike(m.roleName(u)) {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepo) CountByRoleID(_ context.Context, roleID string) (int64, error) {
	var count int64
	for _, u := range m.users {
		if u.RoleID == roleID {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepo) CountBySpecialtyID(_ context.Context, specialtyID string) (int64, error) {
	var count int64
	for _, u := range m.users {
		if u.SpecialtyID != nil && *u.SpecialtyID == specialtyID {
			count++
		}
	}
	return count, nil
}

func (m *mockUserRepo) FirstActiveByDeptRole(_ context.Context, departmentID, roleName string, orderByJoinDate bool) (*model.User, error) {
	var candidates []*model.User
	for _, u := range m.sorted() {
		if u.Status != model.StatusActive || u.DepartmentID == nil || *u.DepartmentID != departmentID {
			continue
		}
		if m.roleName(u) != roleName {
			continue
		}
		candidates = append(candidates, u)
	}
	if len(candidates) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	if orderByJoinDate {
		sort.Slice(candidates, func(i, j int) bool {
			return candidates[i].JoinDate.Before(candidates[j].JoinDate)
		})
	}
	return candidates[0], nil
}

func (m *mockUserRepo) sorted() []*model.User {
	ids := make([]string, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		result = append(result, m.users[id])
	}
	return result
}

func isDoctorLike(roleName string) bool {
	for _, r := range model.DoctorLikeRoles {
		if r == roleName {
			return true
		}
	}
	return false
}

// ── Mock AccountRepository ──

type mockAccountRepo struct {
	accounts map[string]*model.Account
	seq      int
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[string]*model.Account)}
}

func (m *mockAccountRepo) Create(_ context.Context, account *model.Account) error {
	if account.AccountID == "" {
		m.seq++
		account.AccountID = fmt.Sprintf("acct-%03d", m.seq)
	}
	m.accounts[account.AccountID] = account
	return nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id string) (*model.Account, error) {
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range m.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) Update(_ context.Context, account *model.Account) error {
	m.accounts[account.AccountID] = account
	return nil
}

// ── Mock DepartmentRepository ──

type mockDeptRepo struct {
	depts map[string]*model.Department
	seq   int
}

func newMockDeptRepo() *mockDeptRepo {
	return &mockDeptRepo{depts: make(map[string]*model.Department)}
}

func (m *mockDeptRepo) Create(_ context.Context, dept *model.Department) error {
	if dept.DepartmentID == "" {
		m.seq++
		dept.DepartmentID = fmt.Sprintf("dept-%03d", m.seq)
	}
	m.depts[dept.DepartmentID] = dept
	return nil
}

func (m *mockDeptRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	if d, ok := m.depts[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) GetByName(_ context.Context, name string) (*model.Department, error) {
	for _, d := range m.depts {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) List(_ context.Context, includeInactive bool) ([]model.Department, error) {
	ids := make([]string, 0, len(m.depts))
	for id := range m.depts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var result []model.Department
	for _, id := range ids {
		d := m.depts[id]
		if !includeInactive && !d.IsActive {
			continue
		}
		result = append(result, *d)
	}
	return result, nil
}

func (m *mockDeptRepo) Update(_ context.Context, dept *model.Department) error {
	if _, ok := m.depts[dept.DepartmentID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.depts[dept.DepartmentID] = dept
	return nil
}

func (m *mockDeptRepo) UpdateDoctorCount(_ context.Context, id string, count int64) error {
	if d, ok := m.depts[id]; ok {
		d.DoctorCount = int(count)
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) SetHead(_ context.Context, id, userID string) error {
	if d, ok := m.depts[id]; ok {
		if d.HeadID == nil {
			d.HeadID = &userID
		}
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockDeptRepo) Delete(_ context.Context, id string) error {
	delete(m.depts, id)
	return nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	entries map[string]*model.ScheduleEntry
	seq     int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{entries: make(map[string]*model.ScheduleEntry)}
}

func (m *mockScheduleRepo) List(_ context.Context, filters *repository.ScheduleListFilters) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.sorted() {
		if filters != nil {
			if filters.StartDate != nil && e.Date.Before(*filters.StartDate) {
				continue
			}
			if filters.EndDate != nil && e.Date.After(*filters.EndDate) {
				continue
			}
			if filters.DepartmentID != "" && e.DepartmentID != filters.DepartmentID {
				continue
			}
			if filters.UserID != "" && e.UserID != filters.UserID {
				continue
			}
			if filters.Status != "" && e.Status != filters.Status {
				continue
			}
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.ScheduleEntry, error) {
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) CreateChecked(_ context.Context, entry *model.ScheduleEntry) error {
	for _, e := range m.entries {
		if e.UserID == entry.UserID && e.Date.Equal(entry.Date) && e.Status != model.ShiftCancelled {
			return pkgerrors.ErrShiftConflict
		}
	}
	if entry.ScheduleEntryID == "" {
		m.seq++
		entry.ScheduleEntryID = fmt.Sprintf("sched-%03d", m.seq)
	}
	m.entries[entry.ScheduleEntryID] = entry
	return nil
}

func (m *mockScheduleRepo) UpdateChecked(_ context.Context, entry *model.ScheduleEntry, recheckConflict bool) error {
	if _, ok := m.entries[entry.ScheduleEntryID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if recheckConflict {
		for _, e := range m.entries {
			if e.ScheduleEntryID == entry.ScheduleEntryID {
				continue
			}
			if e.UserID == entry.UserID && e.Date.Equal(entry.Date) && e.Status != model.ShiftCancelled {
				return pkgerrors.ErrShiftConflict
			}
		}
	}
	m.entries[entry.ScheduleEntryID] = entry
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

func (m *mockScheduleRepo) Stats(_ context.Context, start, end time.Time) (*repository.ScheduleStats, error) {
	stats := &repository.ScheduleStats{}
	for _, e := range m.entries {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		stats.Total++
		if e.Status == model.ShiftConfirmed {
			stats.Confirmed++
		}
		if e.IsOnCall {
			stats.OnCall++
		}
	}
	return stats, nil
}

func (m *mockScheduleRepo) CountInRange(_ context.Context, start, end time.Time, excludeCancelled bool) (int64, error) {
	var count int64
	for _, e := range m.entries {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		if excludeCancelled && e.Status == model.ShiftCancelled {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockScheduleRepo) CountByDepartmentInRange(_ context.Context, departmentID string, start, end time.Time) (int64, error) {
	var count int64
	for _, e := range m.entries {
		if e.DepartmentID != departmentID || e.Status == model.ShiftCancelled {
			continue
		}
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockScheduleRepo) CountByUserInRange(_ context.Context, userID string, start, end time.Time, status string) (int64, error) {
	var count int64
	for _, e := range m.entries {
		if e.UserID != userID {
			continue
		}
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockScheduleRepo) ListByUserInRange(_ context.Context, userID string, start, end time.Time) ([]model.ScheduleEntry, error) {
	var result []model.ScheduleEntry
	for _, e := range m.sorted() {
		if e.UserID != userID || e.Status == model.ShiftCancelled {
			continue
		}
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		result = append(result, *e)
	}
	return result, nil
}

func (m *mockScheduleRepo) sorted() []*model.ScheduleEntry {
	ids := make([]string, 0, len(m.entries))
	for id := range m.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]*model.ScheduleEntry, 0, len(ids))
	for _, id := range ids {
		result = append(result, m.entries[id])
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}

// ── Mock LeaveRepository ──

type mockLeaveRepo struct {
	requests map[string]*model.LeaveRequest
	seq      int
}

func newMockLeaveRepo() *mockLeaveRepo {
	return &mockLeaveRepo{requests: make(map[string]*model.LeaveRequest)}
}

func (m *mockLeaveRepo) List(_ context.Context, filters *repository.LeaveListFilters) ([]model.LeaveRequest, error) {
	var result []model.LeaveRequest
	for _, r := range m.sorted() {
		if filters != nil {
			if filters.UserID != "" && r.UserID != filters.UserID {
				continue
			}
			if filters.Status != "" && r.Status != filters.Status {
				continue
			}
			if filters.StartDate != nil && r.EndDate.Before(*filters.StartDate) {
				continue
			}
			if filters.EndDate != nil && r.StartDate.After(*filters.EndDate) {
				continue
			}
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockLeaveRepo) GetByID(_ context.Context, id string) (*model.LeaveRequest, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLeaveRepo) CreateChecked(_ context.Context, req *model.LeaveRequest) (*model.LeaveRequest, error) {
	for _, r := range m.requests {
		if r.UserID != req.UserID {
			continue
		}
		if r.Status != model.LeavePending && r.Status != model.LeaveApproved {
			continue
		}
		if r.Overlaps(req.StartDate, req.EndDate) {
			return r, pkgerrors.ErrLeaveOverlap
		}
	}
	if req.LeaveRequestID == "" {
		m.seq++
		req.LeaveRequestID = fmt.Sprintf("leave-%03d", m.seq)
	}
	m.requests[req.LeaveRequestID] = req
	return nil, nil
}

func (m *mockLeaveRepo) Update(_ context.Context, req *model.LeaveRequest) error {
	if _, ok := m.requests[req.LeaveRequestID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.requests[req.LeaveRequestID] = req
	return nil
}

func (m *mockLeaveRepo) Delete(_ context.Context, id string) error {
	delete(m.requests, id)
	return nil
}

func (m *mockLeaveRepo) Stats(_ context.Context) (*repository.LeaveStats, error) {
	stats := &repository.LeaveStats{}
	for _, r := range m.requests {
		switch r.Status {
		case model.LeavePending:
			stats.Pending++
		case model.LeaveApproved:
			stats.Approved++
		case model.LeaveRejected:
			stats.Rejected++
		}
		stats.Total++
	}
	return stats, nil
}

func (m *mockLeaveRepo) CountDistinctUsersOnLeave(_ context.Context, start, end time.Time) (int64, error) {
	users := make(map[string]bool)
	for _, r := range m.requests {
		if r.Status == model.LeaveApproved && r.Overlaps(start, end) {
			users[r.UserID] = true
		}
	}
	return int64(len(users)), nil
}

func (m *mockLeaveRepo) ListApprovedInRange(_ context.Context, start, end time.Time) ([]model.LeaveRequest, error) {
	var result []model.LeaveRequest
	for _, r := range m.sorted() {
		if r.Status == model.LeaveApproved && r.Overlaps(start, end) {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockLeaveRepo) sorted() []*model.LeaveRequest {
	ids := make([]string, 0, len(m.requests))
	for id := range m.requests {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]*model.LeaveRequest, 0, len(ids))
	for _, id := range ids {
		result = append(result, m.requests[id])
	}
	return result
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	notifications map[string]*model.Notification
	seq           int
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{notifications: make(map[string]*model.Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.NotificationID == "" {
		m.seq++
		n.NotificationID = fmt.Sprintf("notify-%03d", m.seq)
	}
	m.notifications[n.NotificationID] = n
	return nil
}

func (m *mockNotificationRepo) CreateBatch(ctx context.Context, ns []model.Notification) error {
	for i := range ns {
		n := ns[i]
		if err := m.Create(ctx, &n); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockNotificationRepo) List(_ context.Context, filters *repository.NotificationListFilters) ([]model.Notification, error) {
	ids := make([]string, 0, len(m.notifications))
	for id := range m.notifications {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var result []model.Notification
	for _, id := range ids {
		n := m.notifications[id]
		if filters != nil {
			if filters.UserID != "" && n.UserID != filters.UserID {
				continue
			}
			if filters.IsRead != nil && n.IsRead != *filters.IsRead {
				continue
			}
			if filters.Type != "" && n.Type != filters.Type {
				continue
			}
		}
		result = append(result, *n)
	}
	return result, nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id string) (*model.Notification, error) {
	if n, ok := m.notifications[id]; ok {
		return n, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) Delete(_ context.Context, id string) error {
	delete(m.notifications, id)
	return nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id string) error {
	if n, ok := m.notifications[id]; ok {
		n.IsRead = true
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			n.IsRead = true
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) ClearRead(_ context.Context, userID string) (int64, error) {
	var count int64
	for id, n := range m.notifications {
		if n.UserID == userID && n.IsRead {
			delete(m.notifications, id)
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) Stats(_ context.Context, userID string) (*repository.NotificationStats, error) {
	stats := &repository.NotificationStats{ByType: make(map[string]int64)}
	for _, n := range m.notifications {
		if userID != "" && n.UserID != userID {
			continue
		}
		stats.Total++
		if !n.IsRead {
			stats.Unread++
		}
		stats.ByType[n.Type]++
	}
	return stats, nil
}

// ── Mock RoleRepository ──

type mockRoleRepo struct {
	roles map[string]*model.Role
	seq   int
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{roles: make(map[string]*model.Role)}
}

func (m *mockRoleRepo) Create(_ context.Context, role *model.Role) error {
	if role.RoleID == "" {
		m.seq++
		role.RoleID = fmt.Sprintf("role-%03d", m.seq)
	}
	m.roles[role.RoleID] = role
	return nil
}

func (m *mockRoleRepo) List(_ context.Context) ([]model.Role, error) {
	ids := make([]string, 0, len(m.roles))
	for id := range m.roles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]model.Role, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.roles[id])
	}
	return result, nil
}

func (m *mockRoleRepo) GetByID(_ context.Context, id string) (*model.Role, error) {
	if r, ok := m.roles[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) GetByName(_ context.Context, name string) (*model.Role, error) {
	for _, r := range m.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) Update(_ context.Context, role *model.Role) error {
	if _, ok := m.roles[role.RoleID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.roles[role.RoleID] = role
	return nil
}

func (m *mockRoleRepo) Delete(_ context.Context, id string) error {
	delete(m.roles, id)
	return nil
}

// ── Mock SpecialtyRepository ──

type mockSpecialtyRepo struct {
	specialties map[string]*model.Specialty
	seq         int
}

func newMockSpecialtyRepo() *mockSpecialtyRepo {
	return &mockSpecialtyRepo{specialties: make(map[string]*model.Specialty)}
}

func (m *mockSpecialtyRepo) Create(_ context.Context, s *model.Specialty) error {
	if s.SpecialtyID == "" {
		m.seq++
		s.SpecialtyID = fmt.Sprintf("spec-%03d", m.seq)
	}
	m.specialties[s.SpecialtyID] = s
	return nil
}

func (m *mockSpecialtyRepo) List(_ context.Context) ([]model.Specialty, error) {
	ids := make([]string, 0, len(m.specialties))
	for id := range m.specialties {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]model.Specialty, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.specialties[id])
	}
	return result, nil
}

func (m *mockSpecialtyRepo) GetByID(_ context.Context, id string) (*model.Specialty, error) {
	if s, ok := m.specialties[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSpecialtyRepo) GetByName(_ context.Context, name string) (*model.Specialty, error) {
	for _, s := range m.specialties {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSpecialtyRepo) Update(_ context.Context, s *model.Specialty) error {
	if _, ok := m.specialties[s.SpecialtyID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.specialties[s.SpecialtyID] = s
	return nil
}

func (m *mockSpecialtyRepo) Delete(_ context.Context, id string) error {
	delete(m.specialties, id)
	return nil
}

// ── Mock HospitalSettingRepository ──

type mockSettingRepo struct {
	setting *model.HospitalSetting
}

func newMockSettingRepo() *mockSettingRepo {
	return &mockSettingRepo{}
}

func (m *mockSettingRepo) Get(_ context.Context) (*model.HospitalSetting, error) {
	if m.setting == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return m.setting, nil
}

func (m *mockSettingRepo) Create(_ context.Context, s *model.HospitalSetting) error {
	if s.SettingID == "" {
		s.SettingID = "setting-001"
	}
	m.setting = s
	return nil
}

func (m *mockSettingRepo) Update(_ context.Context, s *model.HospitalSetting) error {
	if m.setting == nil {
		return gorm.ErrRecordNotFound
	}
	m.setting = s
	return nil
}

// ── 测试夹具 ──

type testRepos struct {
	repo          *repository.Repository
	users         *mockUserRepo
	accounts      *mockAccountRepo
	depts         *mockDeptRepo
	schedules     *mockScheduleRepo
	leaves        *mockLeaveRepo
	notifications *mockNotificationRepo
	roles         *mockRoleRepo
	specialties   *mockSpecialtyRepo
	settings      *mockSettingRepo
}

func newTestRepos() *testRepos {
	roles := newMockRoleRepo()
	users := newMockUserRepo(roles)
	accounts := newMockAccountRepo()
	depts := newMockDeptRepo()
	schedules := newMockScheduleRepo()
	leaves := newMockLeaveRepo()
	notifications := newMockNotificationRepo()
	specialties := newMockSpecialtyRepo()
	settings := newMockSettingRepo()

	return &testRepos{
		repo: &repository.Repository{
			User:            users,
			Account:         accounts,
			Department:      depts,
			Schedule:        schedules,
			Leave:           leaves,
			Notification:    notifications,
			Role:            roles,
			Specialty:       specialties,
			HospitalSetting: settings,
		},
		users:         users,
		accounts:      accounts,
		depts:         depts,
		schedules:     schedules,
		leaves:        leaves,
		notifications: notifications,
		roles:         roles,
		specialties:   specialties,
		settings:      settings,
	}
}

// addRole 注册角色并返回
func (tr *testRepos) addRole(name, displayName string) *model.Role {
	role := &model.Role{Name: name, DisplayName: displayName, IsActive: true}
	_ = tr.roles.Create(context.Background(), role)
	return role
}

// addDept 注册科室并返回
func (tr *testRepos) addDept(name string) *model.Department {
	dept := &model.Department{Name: name, MaxHoursPerDoctor: 40, Color: "#3b82f6", IsActive: true}
	_ = tr.depts.Create(context.Background(), dept)
	return dept
}

// addUser 注册员工并返回（role 预加载到 User.Role 便于口径判断）
func (tr *testRepos) addUser(name string, role *model.Role, dept *model.Department) *model.User {
	user := &model.User{
		Name:         name,
		Email:        fmt.Sprintf("%s@hospital.test", strings.ReplaceAll(name, " ", ".")),
		PasswordHash: "x",
		RoleID:       role.RoleID,
		Role:         role,
		Status:       model.StatusActive,
		JoinDate:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if dept != nil {
		user.DepartmentID = &dept.DepartmentID
	}
	_ = tr.users.Create(context.Background(), user)
	return user
}

func mustDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

