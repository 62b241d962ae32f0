// Package quota counts tasks per category and day and compares the counts
// against the advisory per-category daily limits.
package quota

import "github.com/kazz187/techconsole/internal/task"

// Rule caps how many tasks of one category a day should hold.
type Rule struct {
	CategoryID     int64 `json:"categoryId" yaml:"category_id"`
	MaxTasksPerDay int   `json:"maxTasksPerDay" yaml:"max_tasks_per_day"`
}

// Status is the capacity state of a category on a day.
type Status string

const (
	StatusAtLimit     Status = "AT_LIMIT"
	StatusHasCapacity Status = "HAS_CAPACITY"
)

// Indicator is what the daily view renders next to a category.
type Indicator struct {
	CategoryID     int64  `json:"categoryId"`
	Count          int    `json:"count"`
	MaxTasksPerDay int    `json:"maxTasksPerDay"`
	Status         Status `json:"status"`
}

// CountByCategory counts the tasks carrying categoryID. Nil entries are
// skipped.
func CountByCategory(tasks []*task.Task, categoryID int64) int {
	n := 0
	for _, t := range tasks {
		if t != nil && t.CategoryID == categoryID {
			n++
		}
	}
	return n
}

// CountAll counts every category present in tasks in one pass.
func CountAll(tasks []*task.Task) map[int64]int {
	counts := make(map[int64]int)
	for _, t := range tasks {
		if t != nil {
			counts[t.CategoryID]++
		}
	}
	return counts
}

// StatusOf reports AT_LIMIT once count reaches the limit.
func StatusOf(count int, rule Rule) Status {
	if count >= rule.MaxTasksPerDay {
		return StatusAtLimit
	}
	return StatusHasCapacity
}

// IndicatorFor builds the indicator of one category. ok is false when no
// rule exists for the category; no indicator is shown in that case.
func IndicatorFor(tasks []*task.Task, categoryID int64, rules *RuleSet) (Indicator, bool) {
	rule, ok := rules.Lookup(categoryID)
	if !ok {
		return Indicator{}, false
	}
	count := CountByCategory(tasks, categoryID)
	return Indicator{
		CategoryID:     categoryID,
		Count:          count,
		MaxTasksPerDay: rule.MaxTasksPerDay,
		Status:         StatusOf(count, rule),
	}, true
}

// Indicators builds an indicator for every category that has a rule,
// ordered by category id.
func Indicators(tasks []*task.Task, rules *RuleSet) []Indicator {
	counts := CountAll(tasks)
	var out []Indicator
	for _, rule := range rules.Rules() {
		count := counts[rule.CategoryID]
		out = append(out, Indicator{
			CategoryID:     rule.CategoryID,
			Count:          count,
			MaxTasksPerDay: rule.MaxTasksPerDay,
			Status:         StatusOf(count, rule),
		})
	}
	return out
}
