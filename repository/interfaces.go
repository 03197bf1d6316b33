package repository

import (
	"context"
	"time"

	"github.com/yusufkaramustafa/Timesheet-App/models"
	"github.com/yusufkaramustafa/Timesheet-App/validation"
)

// UserRepository is the persistence surface for users. Lookups return
// (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// TimesheetRepository is the persistence surface for timesheet entries.
// Every owner-scoped method filters by ownerID; a row owned by someone else
// is indistinguishable from a missing row ((nil, nil) or false).
type TimesheetRepository interface {
	Create(ctx context.Context, ownerID uint, v *validation.ValidatedTimesheet) (*models.Timesheet, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Timesheet, error)
	ListAll(ctx context.Context) ([]models.Timesheet, error)
	ListSince(ctx context.Context, start time.Time) ([]models.Timesheet, error)
	ListForExport(ctx context.Context, ownerID uint, from, to *time.Time) ([]models.Timesheet, error)
	Get(ctx context.Context, id, ownerID uint) (*models.Timesheet, error)
	Update(ctx context.Context, id, ownerID uint, fields map[string]interface{}) (*models.Timesheet, error)
	Delete(ctx context.Context, id, ownerID uint) (bool, error)
}
