package handover

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kazz187/techconsole/internal/vocab"
)

const dateLayout = "02/01/2006 15:04"

// Assemble builds the printable document of report. order and defs may be
// nil; anything that cannot be resolved prints as a placeholder. A nil report
// yields an empty document.
func Assemble(report *Report, order *Order, defs []ConditionDefinition) *Document {
	if report == nil {
		return &Document{}
	}
	conditions := indexDefinitions(defs)

	doc := &Document{
		Header: Header{
			Title:     vocab.HandoverTitle(string(report.HandoverType)),
			ReportID:  report.HandoverReportID,
			Code:      fmt.Sprintf("BB-%d", report.HandoverReportID),
			OrderID:   report.OrderID,
			Type:      report.HandoverType,
			CreatedAt: vocab.Placeholder,
			Address:   vocab.Placeholder,
			CreatedBy: orPlaceholder(report.CreatedByStaff.Name),
		},
		Devices:  []DeviceRow{},
		Evidence: evidenceItems(report.EvidenceURLs),
	}
	if !report.CreatedAt.IsZero() {
		doc.Header.CreatedAt = report.CreatedAt.Format(dateLayout)
	}
	if order != nil && strings.TrimSpace(order.ShippingAddress) != "" {
		doc.Header.Address = order.ShippingAddress
	}

	customer := partyBlock(RoleCustomer, report.Customer)
	technician := partyBlock(RoleTechnician, technicianOf(report))
	if report.HandoverType == TypeCheckin {
		doc.PartyA, doc.PartyB = customer, technician
	} else {
		doc.PartyA, doc.PartyB = technician, customer
	}
	doc.PartyA.Label = LabelGiver
	doc.PartyB.Label = LabelReceiver

	doc.Devices = deviceRows(report, order, conditions)
	if report.HandoverType == TypeCheckin && len(report.Discrepancies) > 0 {
		doc.Discrepancies = discrepancyRows(report.Discrepancies, order, conditions)
	}

	signed := map[PartyRole]bool{
		RoleCustomer:   report.CustomerSigned,
		RoleTechnician: report.StaffSigned,
	}
	for _, p := range []PartyBlock{doc.PartyA, doc.PartyB} {
		doc.Signatures = append(doc.Signatures, signatureBlock(p, signed[p.Role]))
	}
	return doc
}

func indexDefinitions(defs []ConditionDefinition) map[int64]ConditionDefinition {
	m := make(map[int64]ConditionDefinition, len(defs))
	for _, d := range defs {
		m[d.ConditionDefinitionID] = d
	}
	return m
}

func technicianOf(report *Report) Party {
	if strings.TrimSpace(report.Technician.Name) != "" {
		return report.Technician
	}
	return report.CreatedByStaff
}

func partyBlock(role PartyRole, p Party) PartyBlock {
	title := "Khách hàng"
	if role == RoleTechnician {
		title = vocab.StaffRole("TECHNICIAN")
	}
	return PartyBlock{
		Role:  role,
		Title: title,
		Name:  orPlaceholder(p.Name),
		Phone: orPlaceholder(p.Phone),
		Email: orPlaceholder(p.Email),
	}
}

func deviceRows(report *Report, order *Order, conditions map[int64]ConditionDefinition) []DeviceRow {
	rows := []DeviceRow{}
	if order == nil {
		return rows
	}
	byDevice := make(map[int64][]DeviceCondition)
	for _, c := range report.DeviceConditions {
		byDevice[c.DeviceID] = append(byDevice[c.DeviceID], c)
	}
	for i, line := range order.OrderDetails {
		row := DeviceRow{
			No:        i + 1,
			Model:     orPlaceholder(line.DeviceModelName),
			Serials:   []string{},
			Ordered:   line.Quantity,
			Condition: vocab.Placeholder,
		}
		var names []string
		for _, a := range line.Allocations {
			if a.Device.DeviceID != 0 {
				row.Delivered++
			}
			if a.Device.SerialNumber != "" {
				row.Serials = append(row.Serials, a.Device.SerialNumber)
			}
			for _, c := range byDevice[a.Device.DeviceID] {
				if name := conditionName(c.ConditionDefinitionID, conditions); name != vocab.Placeholder && !slices.Contains(names, name) {
					names = append(names, name)
				}
			}
		}
		switch {
		case len(names) > 0:
			row.Condition = strings.Join(names, ", ")
		case row.Delivered == 0 && report.HandoverType == TypeCheckout:
			row.Condition = ConditionGood
		}
		rows = append(rows, row)
	}
	return rows
}

func discrepancyRows(discrepancies []Discrepancy, order *Order, conditions map[int64]ConditionDefinition) []DiscrepancyRow {
	rows := make([]DiscrepancyRow, 0, len(discrepancies))
	for i, d := range discrepancies {
		rows = append(rows, DiscrepancyRow{
			No:           i + 1,
			Type:         vocab.DiscrepancyType(d.DiscrepancyType),
			SerialNumber: SerialOf(order, d.DeviceID),
			Condition:    conditionName(d.ConditionDefinitionID, conditions),
			Penalty:      FormatVND(d.PenaltyAmount),
			Note:         orPlaceholder(d.Note),
		})
	}
	return rows
}

// SerialOf finds the serial number of deviceID among the order's
// allocations, first match wins.
func SerialOf(order *Order, deviceID int64) string {
	if order == nil {
		return vocab.Placeholder
	}
	for _, line := range order.OrderDetails {
		for _, a := range line.Allocations {
			if a.Device.DeviceID == deviceID {
				return orPlaceholder(a.Device.SerialNumber)
			}
		}
	}
	return vocab.Placeholder
}

func conditionName(id int64, conditions map[int64]ConditionDefinition) string {
	if d, ok := conditions[id]; ok {
		return orPlaceholder(d.Name)
	}
	return vocab.Placeholder
}

func evidenceItems(urls []string) []EvidenceItem {
	items := []EvidenceItem{}
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		item := EvidenceItem{
			No:       len(items) + 1,
			Kind:     EvidenceRemote,
			Source:   u,
			Link:     u,
			Fallback: ImageFallback,
		}
		if strings.HasPrefix(u, "data:") {
			item.Kind = EvidenceInline
			item.Link = ""
		}
		items = append(items, item)
	}
	return items
}

func signatureBlock(p PartyBlock, signed bool) SignatureBlock {
	s := SignatureBlock{
		Label:  p.Label,
		Role:   p.Role,
		Title:  p.Title,
		Signed: signed,
		Text:   SignaturePlaceholder,
	}
	if signed {
		s.Text = SignedMark + " " + p.Name
	}
	return s
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return vocab.Placeholder
	}
	return s
}
