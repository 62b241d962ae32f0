package daily

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kazz187/techconsole/internal/vocab"
)

const (
	tasksSheet       = "Tasks"
	maintenanceSheet = "Maintenance"
)

var (
	taskHeaders        = []string{"ID", "Danh mục", "Loại", "Nhóm", "Giai đoạn QC", "Trạng thái", "Nhân viên", "Bắt đầu", "Kết thúc", "Mô tả"}
	taskColWidths      = []float64{8, 24, 18, 18, 14, 14, 22, 18, 18, 40}
	maintenanceHeaders = []string{"ID", "Thiết bị", "Số serial", "Từ ngày", "Đến ngày", "Trạng thái", "Lý do ưu tiên", "Mức độ"}
	maintenanceWidths  = []float64{8, 28, 18, 14, 14, 18, 22, 12}
)

const sheetTime = "2006-01-02 15:04"

// NewWorkbook lays the view out on two sheets, one for tasks and one for the
// ordered maintenance list.
func NewWorkbook(v *View) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", tasksSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(maintenanceSheet); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "#8EA9DB", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}

	if err := writeHeader(f, tasksSheet, taskHeaders, taskColWidths, headerStyle); err != nil {
		return nil, err
	}
	for i, t := range v.Tasks {
		row := []any{
			t.ID,
			t.CategoryName,
			t.Type,
			string(t.Classification.Bucket),
			string(t.Classification.QCPhase),
			t.StatusLabel.Text,
			t.AssignedStaffName,
			formatTime(t.PlannedStart),
			formatTime(t.PlannedEnd),
			t.Description,
		}
		if err := f.SetSheetRow(tasksSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	if err := writeHeader(f, maintenanceSheet, maintenanceHeaders, maintenanceWidths, headerStyle); err != nil {
		return nil, err
	}
	for i, m := range v.Maintenance {
		row := []any{
			m.ScheduleID,
			m.DeviceModelName,
			m.DeviceSerialNumber,
			formatDate(m.NextMaintenanceDate),
			formatDate(m.NextMaintenanceEndDate),
			m.StatusLabel.Text,
			m.ReasonLabel.Text,
			string(m.Badge),
		}
		if err := f.SetSheetRow(maintenanceSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WriteXLSX writes the workbook of v to w.
func WriteXLSX(w io.Writer, v *View) error {
	f, err := NewWorkbook(v)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, widths []float64, style int) error {
	for i, h := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		cell := col + "1"
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return vocab.Placeholder
	}
	return t.Format(sheetTime)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return vocab.Placeholder
	}
	return t.Format("02/01/2006")
}
