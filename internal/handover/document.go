package handover

// PartyRole names who stands on a side of the handover.
type PartyRole string

const (
	RoleCustomer   PartyRole = "customer"
	RoleTechnician PartyRole = "technician"
)

// Labels printed on the document.
const (
	LabelGiver    = "Bên giao"
	LabelReceiver = "Bên nhận"

	ConditionGood        = "Tốt"
	SignaturePlaceholder = "(Ký và ghi rõ họ tên)"
	SignedMark           = "✓"
	ImageFallback        = "Không thể tải ảnh, xem liên kết"
)

// Document is the printable form of a handover report.
type Document struct {
	Header        Header           `json:"header"`
	PartyA        PartyBlock       `json:"partyA"`
	PartyB        PartyBlock       `json:"partyB"`
	Devices       []DeviceRow      `json:"devices"`
	Discrepancies []DiscrepancyRow `json:"discrepancies,omitempty"`
	Evidence      []EvidenceItem   `json:"evidence"`
	Signatures    []SignatureBlock `json:"signatures"`
}

// Empty reports whether the document was assembled from no report.
func (d *Document) Empty() bool {
	return d == nil || d.Header.ReportID == 0 && d.Header.Type == ""
}

type Header struct {
	Title     string `json:"title"`
	ReportID  int64  `json:"reportId"`
	Code      string `json:"code"`
	OrderID   int64  `json:"orderId"`
	Type      Type   `json:"type"`
	CreatedAt string `json:"createdAt"`
	Address   string `json:"address"`
	CreatedBy string `json:"createdBy"`
}

// PartyBlock is one side of the handover. PartyA is always the giving side.
type PartyBlock struct {
	Label string    `json:"label"`
	Role  PartyRole `json:"role"`
	Title string    `json:"title"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
	Email string    `json:"email"`
}

type DeviceRow struct {
	No        int      `json:"no"`
	Model     string   `json:"model"`
	Serials   []string `json:"serials"`
	Ordered   int      `json:"ordered"`
	Delivered int      `json:"delivered"`
	Condition string   `json:"condition"`
}

type DiscrepancyRow struct {
	No           int    `json:"no"`
	Type         string `json:"type"`
	SerialNumber string `json:"serialNumber"`
	Condition    string `json:"condition"`
	Penalty      string `json:"penalty"`
	Note         string `json:"note"`
}

// EvidenceKind tells how an evidence image is obtained.
type EvidenceKind string

const (
	// EvidenceInline carries the image bytes in a base64 data URL.
	EvidenceInline EvidenceKind = "inline"
	// EvidenceRemote must be fetched from its URL.
	EvidenceRemote EvidenceKind = "remote"
)

type EvidenceItem struct {
	No   int          `json:"no"`
	Kind EvidenceKind `json:"kind"`
	// Source is the data URL or the remote URL.
	Source string `json:"source"`
	// Link is shown next to the fallback block; empty for inline images.
	Link     string `json:"link,omitempty"`
	Fallback string `json:"fallback"`
}

type SignatureBlock struct {
	Label  string    `json:"label"`
	Role   PartyRole `json:"role"`
	Title  string    `json:"title"`
	Signed bool      `json:"signed"`
	// Text is the checkmark and signer name, or the placeholder.
	Text string `json:"text"`
}

// Signature returns the signature block of role.
func (d *Document) Signature(role PartyRole) (SignatureBlock, bool) {
	if d == nil {
		return SignatureBlock{}, false
	}
	for _, s := range d.Signatures {
		if s.Role == role {
			return s, true
		}
	}
	return SignatureBlock{}, false
}
