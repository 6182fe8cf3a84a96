package leave

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	ExportSheet       = "Pengajuan Cuti"
	ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeader = []any{
	"ID", "Nama", "Departemen", "Jenis Cuti", "Tanggal Mulai", "Tanggal Selesai",
	"Jumlah Hari", "Alasan", "Status", "Disetujui Oleh", "Tanggal Diproses",
	"Alasan Penolakan", "Dibuat",
}

func buildWorkbook(leaves []LeaveRequest) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(ExportSheet, "A1", &exportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, l := range leaves {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := exportRow(l)
		if err := f.SetSheetRow(ExportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f.WriteToBuffer()
}

func exportRow(l LeaveRequest) []any {
	var name, department, approvedBy, processedAt, rejection string
	if l.User != nil {
		name = l.User.Name
		if l.User.Department != nil {
			department = *l.User.Department
		}
	}
	if l.ApprovedBy != nil {
		approvedBy = l.ApprovedBy.String()
	}
	if l.ApprovedAt != nil {
		processedAt = l.ApprovedAt.Format("2006-01-02 15:04")
	}
	if l.RejectionReason != nil {
		rejection = *l.RejectionReason
	}

	return []any{
		l.ID.String(),
		name,
		department,
		l.LeaveType.Label(),
		formatDate(l.StartDate),
		formatDate(l.EndDate),
		l.Days,
		l.Reason,
		string(l.Status),
		approvedBy,
		processedAt,
		rejection,
		l.CreatedAt.Format("2006-01-02 15:04"),
	}
}
