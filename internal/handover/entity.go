package handover

import "time"

// Type is the direction of a handover.
type Type string

const (
	// TypeCheckout hands devices from the shop to the customer.
	TypeCheckout Type = "CHECKOUT"
	// TypeCheckin takes devices back from the customer.
	TypeCheckin Type = "CHECKIN"
)

type Party struct {
	ID    int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string `json:"name" yaml:"name"`
	Phone string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email string `json:"email,omitempty" yaml:"email,omitempty"`
}

// DeviceCondition records the condition a device was found in.
type DeviceCondition struct {
	DeviceID              int64    `json:"deviceId" yaml:"device_id"`
	ConditionDefinitionID int64    `json:"conditionDefinitionId" yaml:"condition_definition_id"`
	Severity              string   `json:"severity,omitempty" yaml:"severity,omitempty"`
	Note                  string   `json:"note,omitempty" yaml:"note,omitempty"`
	Images                []string `json:"images,omitempty" yaml:"images,omitempty"`
}

type Discrepancy struct {
	DiscrepancyID         int64   `json:"discrepancyId" yaml:"discrepancy_id"`
	DiscrepancyType       string  `json:"discrepancyType" yaml:"discrepancy_type"`
	DeviceID              int64   `json:"deviceId" yaml:"device_id"`
	ConditionDefinitionID int64   `json:"conditionDefinitionId,omitempty" yaml:"condition_definition_id,omitempty"`
	PenaltyAmount         float64 `json:"penaltyAmount" yaml:"penalty_amount"`
	Note                  string  `json:"note,omitempty" yaml:"note,omitempty"`
}

type Report struct {
	HandoverReportID int64             `json:"handoverReportId" yaml:"handover_report_id"`
	OrderID          int64             `json:"orderId" yaml:"order_id"`
	HandoverType     Type              `json:"handoverType" yaml:"handover_type"`
	CreatedAt        time.Time         `json:"createdAt" yaml:"created_at"`
	Technician       Party             `json:"technician" yaml:"technician"`
	Customer         Party             `json:"customer" yaml:"customer"`
	CreatedByStaff   Party             `json:"createdByStaff" yaml:"created_by_staff"`
	DeviceConditions []DeviceCondition `json:"deviceConditions" yaml:"device_conditions"`
	Discrepancies    []Discrepancy     `json:"discrepancies" yaml:"discrepancies"`
	EvidenceURLs     []string          `json:"evidenceUrls" yaml:"evidence_urls"`
	CustomerSigned   bool              `json:"customerSigned" yaml:"customer_signed"`
	StaffSigned      bool              `json:"staffSigned" yaml:"staff_signed"`
}

type Device struct {
	DeviceID     int64  `json:"deviceId" yaml:"device_id"`
	SerialNumber string `json:"serialNumber" yaml:"serial_number"`
}

// Allocation binds a physical device to an order line.
type Allocation struct {
	AllocationID int64  `json:"allocationId" yaml:"allocation_id"`
	Device       Device `json:"device" yaml:"device"`
}

type OrderDetail struct {
	OrderDetailID   int64        `json:"orderDetailId" yaml:"order_detail_id"`
	DeviceModelName string       `json:"deviceModelName" yaml:"device_model_name"`
	Quantity        int          `json:"quantity" yaml:"quantity"`
	Allocations     []Allocation `json:"allocations" yaml:"allocations"`
}

type Order struct {
	OrderID         int64         `json:"orderId" yaml:"order_id"`
	ShippingAddress string        `json:"shippingAddress" yaml:"shipping_address"`
	OrderDetails    []OrderDetail `json:"orderDetails" yaml:"order_details"`
}

// ConditionDefinition is a catalogue entry for a device condition.
type ConditionDefinition struct {
	ConditionDefinitionID int64  `json:"conditionDefinitionId" yaml:"condition_definition_id"`
	Name                  string `json:"name" yaml:"name"`
	Description           string `json:"description,omitempty" yaml:"description,omitempty"`
	ConditionType         string `json:"conditionType,omitempty" yaml:"condition_type,omitempty"`
}
