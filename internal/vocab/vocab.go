// Package vocab holds the display vocabulary shared by the console views:
// labels and severity classes for the raw status and category codes the
// back office emits. The tables are unexported and only read through
// lookup functions, so callers cannot alter them.
package vocab

import "strings"

// Severity is the colour class a label is rendered with.
type Severity string

const (
	SeverityDefault    Severity = "default"
	SeverityInfo       Severity = "blue"
	SeverityWarning    Severity = "orange"
	SeveritySuccess    Severity = "green"
	SeverityError      Severity = "red"
	SeverityProcessing Severity = "processing"
)

// Label pairs a display string with its severity.
type Label struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

var taskStatuses = map[string]Label{
	"PENDING":     {"Đang chờ", SeverityWarning},
	"IN_PROGRESS": {"Đang xử lý", SeverityInfo},
	"COMPLETED":   {"Hoàn thành", SeveritySuccess},
	"CANCELLED":   {"Đã hủy", SeverityDefault},
	"FAILED":      {"Thất bại", SeverityError},
}

var maintenanceStatuses = map[string]Label{
	"SCHEDULED":   {"Đã lên lịch", SeverityInfo},
	"PENDING":     {"Chờ bảo trì", SeverityWarning},
	"IN_PROGRESS": {"Đang bảo trì", SeverityProcessing},
	"PROCESSING":  {"Đang bảo trì", SeverityProcessing},
	"COMPLETED":   {"Đã bảo trì", SeveritySuccess},
	"FAILED":      {"Thất bại", SeverityError},
	"CANCELLED":   {"Đã hủy", SeverityError},
	"INACTIVE":    {"Ngưng hoạt động", SeverityError},
}

var priorityReasons = map[string]Label{
	"RENTAL_CONFLICT":       {"Trùng lịch thuê", SeverityError},
	"SCHEDULED_MAINTENANCE": {"Bảo trì định kỳ", SeverityInfo},
	"USAGE_THRESHOLD":       {"Vượt ngưỡng sử dụng", SeverityWarning},
}

var staffRoles = map[string]string{
	"TECHNICIAN":             "Kỹ thuật viên",
	"OPERATOR":               "Điều phối viên",
	"CUSTOMER_SUPPORT_STAFF": "Nhân viên hỗ trợ khách hàng",
	"ADMIN":                  "Quản trị viên",
	"CUSTOMER":               "Khách hàng",
}

var handoverTypes = map[string]string{
	"CHECKOUT": "Biên bản bàn giao thiết bị",
	"CHECKIN":  "Biên bản thu hồi thiết bị",
}

var discrepancyTypes = map[string]string{
	"DAMAGE": "Hư hỏng",
	"LOSS":   "Mất mát",
	"OTHER":  "Khác",
}

var badges = map[string]Severity{
	"error":      SeverityError,
	"warning":    SeverityWarning,
	"success":    SeveritySuccess,
	"processing": SeverityProcessing,
	"default":    SeverityDefault,
}

func key(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func lookup(table map[string]Label, code string) Label {
	if l, ok := table[key(code)]; ok {
		return l
	}
	return Label{Text: code, Severity: SeverityDefault}
}

// TaskStatus returns the label of a task status, echoing unknown codes.
func TaskStatus(code string) Label {
	return lookup(taskStatuses, code)
}

func MaintenanceStatus(code string) Label {
	return lookup(maintenanceStatuses, code)
}

// PriorityReason returns the label of a maintenance priority reason. An empty
// reason yields an empty label.
func PriorityReason(code string) Label {
	if strings.TrimSpace(code) == "" {
		return Label{Severity: SeverityDefault}
	}
	return lookup(priorityReasons, code)
}

func StaffRole(code string) string {
	if r, ok := staffRoles[key(code)]; ok {
		return r
	}
	return code
}

// HandoverTitle is the document title for a handover type.
func HandoverTitle(handoverType string) string {
	if t, ok := handoverTypes[key(handoverType)]; ok {
		return t
	}
	return "Biên bản bàn giao"
}

// DiscrepancyType maps a discrepancy code to its label. Unknown codes pass
// through, a blank code becomes "—".
func DiscrepancyType(code string) string {
	if t, ok := discrepancyTypes[key(code)]; ok {
		return t
	}
	if strings.TrimSpace(code) == "" {
		return Placeholder
	}
	return code
}

// BadgeSeverity maps a maintenance badge status to its colour class.
func BadgeSeverity(badge string) Severity {
	if s, ok := badges[strings.ToLower(badge)]; ok {
		return s
	}
	return SeverityDefault
}

// Placeholder stands in for values that cannot be resolved.
const Placeholder = "—"
