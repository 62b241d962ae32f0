package quota

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// RuleSet is an immutable snapshot of quota rules keyed by category id.
// The zero value and nil hold no rules.
type RuleSet struct {
	byCategory map[int64]Rule
}

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

func NewRuleSet(rules ...Rule) *RuleSet {
	rs := &RuleSet{byCategory: make(map[int64]Rule, len(rules))}
	for _, r := range rules {
		rs.byCategory[r.CategoryID] = r
	}
	return rs
}

// Lookup returns the rule of a category.
func (rs *RuleSet) Lookup(categoryID int64) (Rule, bool) {
	if rs == nil {
		return Rule{}, false
	}
	r, ok := rs.byCategory[categoryID]
	return r, ok
}

// Rules returns the rules ordered by category id.
func (rs *RuleSet) Rules() []Rule {
	if rs == nil {
		return nil
	}
	out := make([]Rule, 0, len(rs.byCategory))
	for _, r := range rs.byCategory {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Rule) int {
		switch {
		case a.CategoryID < b.CategoryID:
			return -1
		case a.CategoryID > b.CategoryID:
			return 1
		}
		return 0
	})
	return out
}

func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.byCategory)
}

// ParseRules decodes a rules document:
//
//	rules:
//	  - category_id: 1
//	    max_tasks_per_day: 5
func ParseRules(data []byte) (*RuleSet, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal quota rules: %w", err)
	}
	for _, r := range f.Rules {
		if r.MaxTasksPerDay < 0 {
			return nil, fmt.Errorf("category %d: max_tasks_per_day must not be negative", r.CategoryID)
		}
	}
	return NewRuleSet(f.Rules...), nil
}

// LoadRules reads a rules file. A missing file yields an empty rule set.
func LoadRules(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewRuleSet(), nil
		}
		return nil, fmt.Errorf("failed to read quota rules %s: %w", path, err)
	}
	return ParseRules(data)
}
