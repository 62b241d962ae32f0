package task

import (
	"slices"
	"strings"
)

// Bucket is the semantic group a task is shown under.
type Bucket string

const (
	BucketQC             Bucket = "QC"
	BucketDeliveryPickup Bucket = "DELIVERY_PICKUP"
	BucketMaintenance    Bucket = "MAINTENANCE_CHECK"
	BucketOther          Bucket = "OTHER"
)

// QCPhase tells pre-rental from post-rental inspections.
type QCPhase string

const (
	QCPhaseNone       QCPhase = ""
	QCPhasePreRental  QCPhase = "PRE_RENTAL"
	QCPhasePostRental QCPhase = "POST_RENTAL"
)

// Direction tells deliveries from pickups inside the delivery bucket.
type Direction string

const (
	DirectionNone     Direction = ""
	DirectionDelivery Direction = "DELIVERY"
	DirectionPickup   Direction = "PICKUP"
)

// Effect is what a matching rule does to its bucket.
type Effect int

const (
	// Exclude removes the bucket from consideration for the rest of the list.
	Exclude Effect = iota
	// Include assigns the bucket unless an earlier rule excluded it.
	Include
)

// Rule is one entry of the ordered classification list.
type Rule struct {
	Name   string
	Bucket Bucket
	Effect Effect
	Match  func(f Fields) bool
}

// Fields is the normalized view of a task the rules match against. All
// strings are upper-cased; absent values are zero.
type Fields struct {
	CategoryID   int64
	CategoryName string
	Type         string
	Description  string
}

// Classification is the result of Classify.
type Classification struct {
	Bucket    Bucket    `json:"bucket"`
	QCPhase   QCPhase   `json:"qcPhase,omitempty"`
	Direction Direction `json:"direction,omitempty"`
	// Rule names the rule that assigned the bucket, empty for OTHER.
	Rule string `json:"rule,omitempty"`
}

var (
	qcExcludedCategories  = []int64{4, 6, 8}
	qcCategories          = []int64{1, 2}
	deliveryTypes         = []string{"DELIVERY", "PICKUP"}
	qcTypes               = []string{"QC", "PRE_RENTAL_QC", "HANDOVER_CHECK"}
	qcCategoryNames       = []string{"PRE RENTAL QC", "POST RENTAL QC"}
	deliveryCategoryNames = []string{"DELIVERY", "PICK UP RENTAL ORDER", "DEVICE REPLACEMENT"}
	deliveryNameKeywords  = []string{"GIAO", "THU"}
	pickupKeywords        = []string{"THU HỒI", "TRẢ HÀNG"}
	maintenanceKeywords   = []string{"MAINTENANCE", "BẢO TRÌ"}
)

const (
	deviceReplacementCategory = 8
	maintenanceCategory       = 5
)

var rules = []Rule{
	{Name: "qc-excluded-category", Bucket: BucketQC, Effect: Exclude, Match: func(f Fields) bool {
		return slices.Contains(qcExcludedCategories, f.CategoryID)
	}},
	{Name: "qc-excluded-type", Bucket: BucketQC, Effect: Exclude, Match: func(f Fields) bool {
		return slices.Contains(deliveryTypes, f.Type)
	}},
	{Name: "qc-type", Bucket: BucketQC, Effect: Include, Match: func(f Fields) bool {
		return slices.Contains(qcTypes, f.Type)
	}},
	{Name: "qc-type-contains", Bucket: BucketQC, Effect: Include, Match: func(f Fields) bool {
		return strings.Contains(f.Type, "QC")
	}},
	{Name: "qc-category", Bucket: BucketQC, Effect: Include, Match: func(f Fields) bool {
		return slices.Contains(qcCategories, f.CategoryID)
	}},
	{Name: "qc-category-name", Bucket: BucketQC, Effect: Include, Match: func(f Fields) bool {
		return slices.Contains(qcCategoryNames, f.CategoryName)
	}},
	{Name: "delivery-type", Bucket: BucketDeliveryPickup, Effect: Include, Match: func(f Fields) bool {
		return slices.Contains(deliveryTypes, f.Type)
	}},
	{Name: "delivery-category-keyword", Bucket: BucketDeliveryPickup, Effect: Include, Match: func(f Fields) bool {
		return containsAny(f.CategoryName, deliveryNameKeywords)
	}},
	{Name: "delivery-category-name", Bucket: BucketDeliveryPickup, Effect: Include, Match: func(f Fields) bool {
		return slices.Contains(deliveryCategoryNames, f.CategoryName)
	}},
	{Name: "delivery-category", Bucket: BucketDeliveryPickup, Effect: Include, Match: func(f Fields) bool {
		return f.CategoryID == deviceReplacementCategory
	}},
	{Name: "maintenance-category", Bucket: BucketMaintenance, Effect: Include, Match: func(f Fields) bool {
		return f.CategoryID == maintenanceCategory
	}},
	{Name: "maintenance-keyword", Bucket: BucketMaintenance, Effect: Include, Match: func(f Fields) bool {
		return containsAny(f.Type, maintenanceKeywords) || containsAny(f.CategoryName, maintenanceKeywords)
	}},
}

// Rules returns the classification rules in evaluation order.
func Rules() []Rule {
	return slices.Clone(rules)
}

// FieldsOf normalizes a task for rule matching. A nil task yields zero Fields.
func FieldsOf(t *Task) Fields {
	if t == nil {
		return Fields{}
	}
	return Fields{
		CategoryID:   t.CategoryID,
		CategoryName: upper(t.CategoryName),
		Type:         NormalizeType(t.Type),
		Description:  upper(t.Description),
	}
}

// NormalizeType upper-cases a free-text type label and joins words with
// underscores, so "pre-rental qc" and "PRE_RENTAL_QC" compare equal.
func NormalizeType(s string) string {
	s = upper(s)
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return '_'
		}
		return r
	}, s)
}

// Classify walks the rule list in order. Exclusions only ever remove their
// own bucket; the first inclusion for a bucket that is still eligible wins.
func Classify(t *Task) Classification {
	f := FieldsOf(t)
	excluded := map[Bucket]bool{}
	for _, r := range rules {
		if !r.Match(f) {
			continue
		}
		if r.Effect == Exclude {
			excluded[r.Bucket] = true
			continue
		}
		if excluded[r.Bucket] {
			continue
		}
		c := Classification{Bucket: r.Bucket, Rule: r.Name}
		switch r.Bucket {
		case BucketQC:
			c.QCPhase = qcPhase(f)
		case BucketDeliveryPickup:
			c.Direction = DirectionDelivery
			if isPickup(f) {
				c.Direction = DirectionPickup
			}
		}
		return c
	}
	return Classification{Bucket: BucketOther}
}

// IsQC reports whether t belongs to the QC bucket.
func IsQC(t *Task) bool {
	return Classify(t).Bucket == BucketQC
}

// IsDeliveryOrPickup reports whether t belongs to the delivery bucket.
func IsDeliveryOrPickup(t *Task) bool {
	return Classify(t).Bucket == BucketDeliveryPickup
}

// IsPickup reports whether t is a return pickup, looking at the type, the
// category and the free-text description.
func IsPickup(t *Task) bool {
	return isPickup(FieldsOf(t))
}

// QCPhaseOf sub-classifies a QC task. The category id decides first
// (1 pre, 2 post); otherwise the PRE/POST, RENTAL and QC substrings must all
// appear in the category name or in the type.
func QCPhaseOf(t *Task) QCPhase {
	return qcPhase(FieldsOf(t))
}

func qcPhase(f Fields) QCPhase {
	switch f.CategoryID {
	case 1:
		return QCPhasePreRental
	case 2:
		return QCPhasePostRental
	}
	for _, s := range []string{f.CategoryName, f.Type} {
		if !strings.Contains(s, "RENTAL") || !strings.Contains(s, "QC") {
			continue
		}
		if strings.Contains(s, "POST") {
			return QCPhasePostRental
		}
		if strings.Contains(s, "PRE") {
			return QCPhasePreRental
		}
	}
	return QCPhaseNone
}

func isPickup(f Fields) bool {
	if f.Type == "PICKUP" {
		return true
	}
	if strings.Contains(f.CategoryName, "THU") || strings.Contains(f.CategoryName, "PICK UP") {
		return true
	}
	return containsAny(f.Description, pickupKeywords)
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
