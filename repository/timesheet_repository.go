package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yusufkaramustafa/Timesheet-App/models"
	"github.com/yusufkaramustafa/Timesheet-App/validation"
)

type GormTimesheetRepository struct {
	db *gorm.DB
}

func NewTimesheetRepository(db *gorm.DB) *GormTimesheetRepository {
	return &GormTimesheetRepository{db: db}
}

// Create inserts a new entry owned by ownerID. The payload must already be
// validated; created_at is assigned by gorm from the server clock.
func (r *GormTimesheetRepository) Create(ctx context.Context, ownerID uint, v *validation.ValidatedTimesheet) (*models.Timesheet, error) {
	ts := models.Timesheet{
		UserID:      ownerID,
		Date:        v.Date,
		Project:     v.Project,
		Hours:       v.Hours,
		Description: v.Description,
	}
	if err := r.db.WithContext(ctx).Create(&ts).Error; err != nil {
		return nil, err
	}
	return &ts, nil
}

func (r *GormTimesheetRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Timesheet, error) {
	var timesheets []models.Timesheet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("date DESC").
		Find(&timesheets).Error
	if err != nil {
		return nil, err
	}
	return timesheets, nil
}

func (r *GormTimesheetRepository) ListAll(ctx context.Context) ([]models.Timesheet, error) {
	var timesheets []models.Timesheet
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&timesheets).Error; err != nil {
		return nil, err
	}
	return timesheets, nil
}

// ListSince returns every entry with date >= start, across all owners.
func (r *GormTimesheetRepository) ListSince(ctx context.Context, start time.Time) ([]models.Timesheet, error) {
	var timesheets []models.Timesheet
	err := r.db.WithContext(ctx).
		Where("date >= ?", start).
		Order("date ASC").
		Find(&timesheets).Error
	if err != nil {
		return nil, err
	}
	return timesheets, nil
}

// ListForExport returns the owner's entries inside the closed [from, to]
// interval, date ascending. A nil end leaves that side unbounded.
func (r *GormTimesheetRepository) ListForExport(ctx context.Context, ownerID uint, from, to *time.Time) ([]models.Timesheet, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if to != nil {
		query = query.Where("date <= ?", *to)
	}
	var timesheets []models.Timesheet
	if err := query.Order("date ASC").Find(&timesheets).Error; err != nil {
		return nil, err
	}
	return timesheets, nil
}

func (r *GormTimesheetRepository) Get(ctx context.Context, id, ownerID uint) (*models.Timesheet, error) {
	var ts models.Timesheet
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&ts).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

// Update applies the validated fields to a single owned row and returns the
// updated record. The write is one statement, so a failure leaves the row
// untouched. Returns (nil, nil) when the row is missing or owned by someone
// else.
func (r *GormTimesheetRepository) Update(ctx context.Context, id, ownerID uint, fields map[string]interface{}) (*models.Timesheet, error) {
	ts, err := r.Get(ctx, id, ownerID)
	if err != nil || ts == nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(ts).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return ts, nil
}

// Delete removes a single owned row. Returns false when nothing matched.
func (r *GormTimesheetRepository) Delete(ctx context.Context, id, ownerID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&models.Timesheet{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
