package handover

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kazz187/techconsole/internal/render"
)

// Layout lays the document out as printable blocks.
func (d *Document) Layout() render.Layout {
	if d.Empty() {
		return render.Layout{Blocks: []render.Block{render.Paragraph{Text: "Không có dữ liệu biên bản", Align: render.AlignCenter}}}
	}
	b := []render.Block{
		render.Paragraph{Text: "CỘNG HÒA XÃ HỘI CHỦ NGHĨA VIỆT NAM", Bold: true, Align: render.AlignCenter},
		render.Paragraph{Text: "Độc lập - Tự do - Hạnh phúc", Align: render.AlignCenter},
		render.Spacer{Height: 8},
		render.Heading{Text: strings.ToUpper(d.Header.Title)},
		render.Paragraph{Text: fmt.Sprintf("Số: %s", d.Header.Code), Align: render.AlignCenter},
		render.Fields{Items: []render.Field{
			{Label: "Mã đơn hàng", Value: orderCode(d.Header.OrderID)},
			{Label: "Thời gian", Value: d.Header.CreatedAt},
			{Label: "Địa điểm", Value: d.Header.Address},
			{Label: "Người lập", Value: d.Header.CreatedBy},
		}},
	}
	for _, p := range []PartyBlock{d.PartyA, d.PartyB} {
		b = append(b,
			render.Paragraph{Text: fmt.Sprintf("%s (%s)", strings.ToUpper(p.Label), p.Title), Bold: true},
			render.Fields{Items: []render.Field{
				{Label: "Họ và tên", Value: p.Name},
				{Label: "Điện thoại", Value: p.Phone},
				{Label: "Email", Value: p.Email},
			}},
		)
	}

	devices := render.Table{
		Title:  "Danh sách thiết bị",
		Header: []string{"STT", "Thiết bị", "Số serial", "SL đặt", "SL giao", "Tình trạng"},
		Widths: []float64{0.6, 2.4, 2.2, 0.9, 0.9, 1.6},
	}
	for _, r := range d.Devices {
		serials := strings.Join(r.Serials, ", ")
		if serials == "" {
			serials = "—"
		}
		devices.Rows = append(devices.Rows, []string{
			strconv.Itoa(r.No), r.Model, serials, strconv.Itoa(r.Ordered), strconv.Itoa(r.Delivered), r.Condition,
		})
	}
	b = append(b, devices)

	if len(d.Discrepancies) > 0 {
		t := render.Table{
			Title:  "Sai lệch và tiền phạt",
			Header: []string{"STT", "Loại", "Số serial", "Tình trạng", "Tiền phạt", "Ghi chú"},
			Widths: []float64{0.6, 1.2, 1.8, 1.8, 1.4, 2.2},
		}
		for _, r := range d.Discrepancies {
			t.Rows = append(t.Rows, []string{strconv.Itoa(r.No), r.Type, r.SerialNumber, r.Condition, r.Penalty, r.Note})
		}
		b = append(b, t)
	}

	if len(d.Evidence) > 0 {
		b = append(b, render.Paragraph{Text: "Hình ảnh minh chứng", Bold: true})
		for _, e := range d.Evidence {
			b = append(b, render.Image{
				Source:   e.Source,
				Caption:  fmt.Sprintf("Ảnh %d", e.No),
				Link:     e.Link,
				Fallback: e.Fallback,
			})
		}
	}

	cols := make([][]string, 0, len(d.Signatures))
	for _, s := range d.Signatures {
		cols = append(cols, []string{strings.ToUpper(s.Label), s.Title, "", s.Text})
	}
	b = append(b, render.Spacer{Height: 16}, render.Columns{Columns: cols})
	return render.Layout{Blocks: b}
}

func orderCode(id int64) string {
	if id == 0 {
		return "—"
	}
	return fmt.Sprintf("#%d", id)
}

// FileName is the download name of the document's PDF.
func (d *Document) FileName() string {
	t := strings.ToLower(string(d.Header.Type))
	if t == "" {
		t = "handover"
	}
	return fmt.Sprintf("bien-ban-%s-%d.pdf", t, d.Header.ReportID)
}
