package report

import (
	"context"
	"fmt"

	"go-vault/internal/common/apperr"
	"go-vault/internal/features/access"
	"go-vault/internal/features/file"
	"go-vault/internal/features/user"
	"go-vault/pkg/utils"

	"github.com/xuri/excelize/v2"
)

type ReportService interface {
	// ExportInventory builds an XLSX workbook of every file in the
	// organization, pending-deletion ones included. Org admins only.
	ExportInventory(ctx context.Context, caller *user.User, orgID string) ([]byte, string, error)
}

type ReportServiceImpl struct {
	FileRepo file.FileRepository
}

func NewReportService(fileRepo file.FileRepository) ReportService {
	return &ReportServiceImpl{FileRepo: fileRepo}
}

var inventoryColumns = []string{"Name", "Type", "Uploader ID", "Blob Ref", "Marked For Deletion", "Created At"}

func (s *ReportServiceImpl) ExportInventory(ctx context.Context, caller *user.User, orgID string) ([]byte, string, error) {
	decision := access.CheckOrgAccess(caller, orgID)
	if !decision.Allowed || decision.Role != user.RoleAdmin {
		return nil, "", fmt.Errorf("%w: org admin required for inventory export", apperr.ErrAccessDenied)
	}

	active, err := s.FileRepo.FindActiveByOrg(ctx, orgID)
	if err != nil {
		return nil, "", err
	}
	pending, err := s.FileRepo.FindPendingByOrg(ctx, orgID)
	if err != nil {
		return nil, "", err
	}
	files := append(active, pending...)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Inventory"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range inventoryColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx, record := range files {
		values := []interface{}{
			record.Name,
			string(record.Type),
			record.UploaderID.Hex(),
			record.BlobRef,
			record.MarkedForDeletion,
			record.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for colIdx, val := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	for i := range inventoryColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 20)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := utils.Slugify(orgID) + "-file-inventory.xlsx"
	return buffer.Bytes(), filename, nil
}
