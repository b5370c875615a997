package listview

import (
	"errors"
	"sort"
	"strings"

	"employee-http-service/internal/client/api"
)

// 可用的每页行数
var PageSizeOptions = []int{10, 25, 50}

// DefaultPageSize 默认每页行数
const DefaultPageSize = 10

// 可排序字段
const (
	SortByID    = "id"
	SortByName  = "name"
	SortByEmail = "email"
	SortByDate  = "date"
)

var ErrRowNotFound = errors.New("记录不存在")

// EditBuffer 行内编辑缓冲区，保存未提交的修改
type EditBuffer struct {
	ID          uint
	Name        string
	Email       string
	Mobile      string
	Designation string
	Gender      string
	Course      []string
}

// ListView 员工列表的客户端状态机
// 搜索、排序和分页都在本地完成，不向服务端发起额外请求
type ListView struct {
	all      []api.Employee // 服务端返回的完整集合
	filtered []api.Employee // 当前过滤结果

	query    string
	sortBy   string
	sortAsc  bool
	page     int
	pageSize int

	editing *EditBuffer
}

// New 创建空的列表视图
func New() *ListView {
	return &ListView{
		pageSize: DefaultPageSize,
	}
}

// Load 载入完整员工集合，保持服务端返回顺序，重置过滤和分页状态
func (v *ListView) Load(employees []api.Employee) {
	v.all = make([]api.Employee, len(employees))
	copy(v.all, employees)
	v.query = ""
	v.sortBy = ""
	v.page = 0
	v.editing = nil
	v.rebuild()
}

// Reload 用重新拉取的集合替换完整集合，保留当前过滤、排序和分页状态
func (v *ListView) Reload(employees []api.Employee) {
	v.all = make([]api.Employee, len(employees))
	copy(v.all, employees)
	v.rebuild()
}

// Search 按姓名做大小写不敏感的子串过滤，过滤始终基于完整集合
func (v *ListView) Search(query string) {
	v.query = query
	v.page = 0
	v.rebuild()
}

// Query 返回当前搜索串
func (v *ListView) Query() string {
	return v.query
}

// SortBy 按字段排序；重复选择同一字段时反转方向，切换字段时恢复升序
func (v *ListView) SortBy(field string) {
	if v.sortBy == field {
		v.sortAsc = !v.sortAsc
	} else {
		v.sortBy = field
		v.sortAsc = true
	}
	v.rebuild()
}

// SortState 返回当前排序字段和方向
func (v *ListView) SortState() (string, bool) {
	return v.sortBy, v.sortAsc
}

// rebuild 从完整集合重建过滤结果，并重新应用当前排序
func (v *ListView) rebuild() {
	if v.query == "" {
		v.filtered = make([]api.Employee, len(v.all))
		copy(v.filtered, v.all)
	} else {
		needle := strings.ToLower(v.query)
		v.filtered = v.filtered[:0]
		for _, e := range v.all {
			if strings.Contains(strings.ToLower(e.Name), needle) {
				v.filtered = append(v.filtered, e)
			}
		}
	}

	v.applySort()

	if maxPage := v.maxPage(); v.page > maxPage {
		v.page = maxPage
	}
}

// applySort 对过滤结果应用当前排序，未选择排序字段时保持原始顺序
func (v *ListView) applySort() {
	if v.sortBy == "" {
		return
	}

	sort.SliceStable(v.filtered, func(i, j int) bool {
		a, b := v.filtered[i], v.filtered[j]
		var less bool
		switch v.sortBy {
		case SortByName:
			less = strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByEmail:
			less = strings.ToLower(a.Email) < strings.ToLower(b.Email)
		case SortByDate:
			less = a.CreatedAt < b.CreatedAt
		default:
			less = a.ID < b.ID
		}
		if !v.sortAsc {
			return !less
		}
		return less
	})
}

// TotalCount 返回过滤后的记录总数
func (v *ListView) TotalCount() int {
	return len(v.filtered)
}

// Page 返回当前页码（从0开始）
func (v *ListView) Page() int {
	return v.page
}

// PageSize 返回当前每页行数
func (v *ListView) PageSize() int {
	return v.pageSize
}

// SetPage 跳转到指定页，越界值会被截断
func (v *ListView) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	if maxPage := v.maxPage(); page > maxPage {
		page = maxPage
	}
	v.page = page
}

// SetPageSize 修改每页行数并回到第一页，非法值回退为默认值
func (v *ListView) SetPageSize(size int) {
	valid := false
	for _, option := range PageSizeOptions {
		if size == option {
			valid = true
			break
		}
	}
	if !valid {
		size = DefaultPageSize
	}
	v.pageSize = size
	v.page = 0
}

// maxPage 返回当前过滤结果下的最大页码
func (v *ListView) maxPage() int {
	if len(v.filtered) == 0 {
		return 0
	}
	return (len(v.filtered) - 1) / v.pageSize
}

// Rows 返回当前页的记录
func (v *ListView) Rows() []api.Employee {
	start := v.page * v.pageSize
	if start >= len(v.filtered) {
		return nil
	}
	end := start + v.pageSize
	if end > len(v.filtered) {
		end = len(v.filtered)
	}
	return v.filtered[start:end]
}

// StartEdit 把指定记录拷贝到编辑缓冲区
func (v *ListView) StartEdit(id uint) error {
	for _, e := range v.all {
		if e.ID == id {
			course := make([]string, len(e.Course))
			copy(course, e.Course)
			v.editing = &EditBuffer{
				ID:          e.ID,
				Name:        e.Name,
				Email:       e.Email,
				Mobile:      e.Mobile,
				Designation: e.Designation,
				Gender:      e.Gender,
				Course:      course,
			}
			return nil
		}
	}
	return ErrRowNotFound
}

// Editing 返回当前编辑缓冲区，未处于编辑状态时为nil
func (v *ListView) Editing() *EditBuffer {
	return v.editing
}

// CancelEdit 丢弃编辑缓冲区中的修改
func (v *ListView) CancelEdit() {
	v.editing = nil
}

// CommitEdit 用服务端确认后的记录替换本地副本并退出编辑状态
func (v *ListView) CommitEdit(updated api.Employee) {
	for i, e := range v.all {
		if e.ID == updated.ID {
			v.all[i] = updated
			break
		}
	}
	v.editing = nil
	v.rebuild()
}

// Remove 从本地集合中移除指定记录，通常在服务端删除成功后调用
func (v *ListView) Remove(id uint) {
	for i, e := range v.all {
		if e.ID == id {
			v.all = append(v.all[:i], v.all[i+1:]...)
			break
		}
	}
	v.rebuild()
}

// Find 按ID查找记录
func (v *ListView) Find(id uint) (api.Employee, bool) {
	for _, e := range v.all {
		if e.ID == id {
			return e, true
		}
	}
	return api.Employee{}, false
}
