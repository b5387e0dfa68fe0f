package report

import (
	"context"
	"fmt"
	"time"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/leave"
	"github.com/xuri/excelize/v2"
)

// Service renders leave history as XLSX workbooks for download.
type Service struct {
	leave.LeaveRequestRepository
}

func NewService(leaveRequestRepository leave.LeaveRequestRepository) *Service {
	return &Service{LeaveRequestRepository: leaveRequestRepository}
}

var reportHeaders = []string{
	"Employee", "Email", "Leave Type", "Start Date", "Resumption Date",
	"Duration (days)", "Status", "Line Manager", "Reliever",
	"Balance Before", "Remaining Days", "Reason",
}

// MonthlyReportXLSX implements leave.ReportService.
func (s *Service) MonthlyReportXLSX(ctx context.Context, tenantID string, startDate, endDate time.Time) ([]byte, error) {
	requests, err := s.LeaveRequestRepository.ListForReport(ctx, tenantID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load leave history: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Leave Report"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for col, header := range reportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, r := range requests {
		values := []interface{}{
			deref(r.EmployeeName),
			deref(r.EmployeeEmail),
			deref(r.LeaveTypeName),
			r.StartDate.Format("2006-01-02"),
			r.ResumptionDate.Format("2006-01-02"),
			r.Duration,
			string(r.Status),
			deref(r.LineManagerName),
			deref(r.RelieverName),
			r.BalanceBeforeLeave,
			r.RemainingDays,
			r.Reason,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
