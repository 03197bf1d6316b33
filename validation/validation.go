package validation

import (
	"errors"
	"fmt"
	"time"

	"github.com/yusufkaramustafa/Timesheet-App/models"
)

// Validation failures. Handlers translate these to 400 responses.
var (
	ErrInvalidProject   = errors.New("invalid project option")
	ErrInvalidHours     = fmt.Errorf("hours must be between %g and %g", models.MinHours, models.MaxHours)
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrMissingField     = errors.New("missing required field")
)

// TimesheetInput is a full create payload, prior to validation.
type TimesheetInput struct {
	Date        string
	Project     string
	Hours       float64
	Description *string
}

// TimesheetUpdate is a partial update payload. Nil fields were omitted
// and keep their prior value.
type TimesheetUpdate struct {
	Date        *string
	Project     *string
	Hours       *float64
	Description *string
}

// ValidatedTimesheet holds a create payload with every business rule checked
// and the date parsed.
type ValidatedTimesheet struct {
	Date        time.Time
	Project     string
	Hours       float64
	Description string
}

// ValidatedUpdate holds the checked subset of fields supplied in a partial
// update, keyed by column name, ready to hand to the repository.
type ValidatedUpdate struct {
	Fields map[string]interface{}
}

// ValidateTimesheet checks a full create payload against the business rules:
// project must be one of the allowed options, hours within bounds, date in
// YYYY-MM-DD form, description present (empty string is allowed).
func ValidateTimesheet(in TimesheetInput) (*ValidatedTimesheet, error) {
	if !models.ValidProject(in.Project) {
		return nil, ErrInvalidProject
	}
	if in.Hours < models.MinHours || in.Hours > models.MaxHours {
		return nil, ErrInvalidHours
	}
	date, err := ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	if in.Description == nil {
		return nil, fmt.Errorf("%w: description", ErrMissingField)
	}
	return &ValidatedTimesheet{
		Date:        date,
		Project:     in.Project,
		Hours:       in.Hours,
		Description: *in.Description,
	}, nil
}

// ValidateTimesheetUpdate checks only the fields supplied in a partial
// update. Omitted (nil) fields are left out of the result entirely.
func ValidateTimesheetUpdate(in TimesheetUpdate) (*ValidatedUpdate, error) {
	fields := make(map[string]interface{})
	if in.Project != nil {
		if !models.ValidProject(*in.Project) {
			return nil, ErrInvalidProject
		}
		fields["project"] = *in.Project
	}
	if in.Hours != nil {
		if *in.Hours < models.MinHours || *in.Hours > models.MaxHours {
			return nil, ErrInvalidHours
		}
		fields["hours"] = *in.Hours
	}
	if in.Date != nil {
		date, err := ParseDate(*in.Date)
		if err != nil {
			return nil, err
		}
		fields["date"] = date
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	return &ValidatedUpdate{Fields: fields}, nil
}

// ParseDate parses a strict YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	date, err := time.ParseInLocation(models.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// ParseDateRange parses the optional date_from / date_to export parameters.
// Either end may be empty (unbounded); a non-empty value that does not parse
// fails with ErrInvalidDateRange.
func ParseDateRange(from, to string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if from != "" {
		d, err := ParseDate(from)
		if err != nil {
			return nil, nil, ErrInvalidDateRange
		}
		start = &d
	}
	if to != "" {
		d, err := ParseDate(to)
		if err != nil {
			return nil, nil, ErrInvalidDateRange
		}
		end = &d
	}
	return start, end, nil
}
