package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yusufkaramustafa/Timesheet-App/models"
	"github.com/yusufkaramustafa/Timesheet-App/repository"
)

var (
	// ErrUserNotFound means a single-user export targeted an unknown user.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoData means an all-users export produced no artifacts at all.
	ErrNoData = errors.New("no data found")
)

const (
	detailSheet  = "Timesheets"
	summarySheet = "Summary"
)

var detailHeaders = []string{"Date", "Project", "Hours", "Description", "Created At"}

type ExportService struct {
	timesheets repository.TimesheetRepository
	users      repository.UserRepository
}

func NewExportService(timesheets repository.TimesheetRepository, users repository.UserRepository) *ExportService {
	return &ExportService{timesheets: timesheets, users: users}
}

// ExportUser builds a single .xlsx workbook for one user: a detail sheet
// with one row per entry (date ascending), and a summary sheet with the
// total. A user with no entries in range still gets a valid workbook with a
// zero total.
func (s *ExportService) ExportUser(ctx context.Context, userID uint, from, to *time.Time) (string, []byte, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrUserNotFound
	}

	data, err := s.buildWorkbook(ctx, user, from, to)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("timesheet_%s.xlsx", user.Username), data, nil
}

// ExportAll builds one workbook per user and packs them into a zip archive.
// A user whose workbook fails to build is logged and skipped; if nothing at
// all could be built the export fails with ErrNoData.
func (s *ExportService) ExportAll(ctx context.Context, from, to *time.Time) (string, []byte, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return "", nil, err
	}

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)
	count := 0
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}
		data, err := s.buildWorkbook(ctx, &user, from, to)
		if err != nil {
			log.Printf("export: skipping user %s: %v", user.Username, err)
			continue
		}
		entry, err := archive.Create(fmt.Sprintf("timesheet_%s.xlsx", user.Username))
		if err != nil {
			return "", nil, err
		}
		if _, err := entry.Write(data); err != nil {
			return "", nil, err
		}
		count++
	}
	if err := archive.Close(); err != nil {
		return "", nil, err
	}
	if count == 0 {
		return "", nil, ErrNoData
	}
	return "timesheets_all_users.zip", buf.Bytes(), nil
}

func (s *ExportService) buildWorkbook(ctx context.Context, user *models.User, from, to *time.Time) ([]byte, error) {
	records, err := s.timesheets.ListForExport(ctx, user.ID, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), detailSheet)
	for col, header := range detailHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(detailSheet, cell, header); err != nil {
			return nil, err
		}
	}

	total := 0.0
	for i, ts := range records {
		row := []interface{}{
			ts.Date.Format(models.DateLayout),
			ts.Project,
			ts.Hours,
			ts.Description,
			ts.CreatedAt.UTC().Format(models.TimestampLayout),
		}
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(detailSheet, cell, value); err != nil {
				return nil, err
			}
		}
		total += ts.Hours
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(summarySheet, "A1", "Total Hours"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(summarySheet, "B1", total); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
