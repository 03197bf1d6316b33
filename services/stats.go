package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/yusufkaramustafa/Timesheet-App/models"
	"github.com/yusufkaramustafa/Timesheet-App/repository"
)

// Statistics is the admin dashboard payload: total hours grouped three ways
// over the same filtered record set.
type Statistics struct {
	ProjectDistribution []ProjectHours  `json:"projectDistribution"`
	EmployeeHours       []EmployeeHours `json:"employeeHours"`
	DailyTrends         []DailyHours    `json:"dailyTrends"`
}

type ProjectHours struct {
	Project string  `json:"project"`
	Hours   float64 `json:"hours"`
}

type EmployeeHours struct {
	Name  string  `json:"name"`
	Hours float64 `json:"hours"`
}

type DailyHours struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// ErrInvalidRange means the range query parameter was not week, month or
// year.
var ErrInvalidRange = errors.New("invalid range")

// RangeStart resolves a named range to its start date relative to now:
// week is the most recent Monday on or before today, month the first of the
// current month, year the first of January. Records dated on or after the
// start are in range; there is no upper bound.
func RangeStart(now time.Time, rng string) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch rng {
	case "week":
		offset := (int(today.Weekday()) + 6) % 7
		return today.AddDate(0, 0, -offset), nil
	case "month":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	case "year":
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidRange, rng)
	}
}

type StatsService struct {
	timesheets repository.TimesheetRepository
	users      repository.UserRepository
}

func NewStatsService(timesheets repository.TimesheetRepository, users repository.UserRepository) *StatsService {
	return &StatsService{timesheets: timesheets, users: users}
}

// Statistics computes the three aggregations for the given named range.
func (s *StatsService) Statistics(ctx context.Context, rng string) (*Statistics, error) {
	start, err := RangeStart(time.Now().UTC(), rng)
	if err != nil {
		return nil, err
	}

	records, err := s.timesheets.ListSince(ctx, start)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	usernames := make(map[uint]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	return &Statistics{
		ProjectDistribution: aggregateByProject(records),
		EmployeeHours:       aggregateByEmployee(records, usernames),
		DailyTrends:         aggregateByDate(records),
	}, nil
}

// aggregateByProject sums hours per project, in first-seen order.
func aggregateByProject(records []models.Timesheet) []ProjectHours {
	totals := make(map[string]float64)
	var order []string
	for _, ts := range records {
		if _, seen := totals[ts.Project]; !seen {
			order = append(order, ts.Project)
		}
		totals[ts.Project] += ts.Hours
	}
	out := make([]ProjectHours, 0, len(order))
	for _, project := range order {
		out = append(out, ProjectHours{Project: project, Hours: totals[project]})
	}
	return out
}

// aggregateByEmployee sums hours per owner, labelled with the username, in
// first-seen order. Unknown owners keep a numeric label rather than being
// dropped.
func aggregateByEmployee(records []models.Timesheet, usernames map[uint]string) []EmployeeHours {
	totals := make(map[uint]float64)
	var order []uint
	for _, ts := range records {
		if _, seen := totals[ts.UserID]; !seen {
			order = append(order, ts.UserID)
		}
		totals[ts.UserID] += ts.Hours
	}
	out := make([]EmployeeHours, 0, len(order))
	for _, id := range order {
		name, ok := usernames[id]
		if !ok {
			name = fmt.Sprintf("user %d", id)
		}
		out = append(out, EmployeeHours{Name: name, Hours: totals[id]})
	}
	return out
}

// aggregateByDate sums hours per calendar day, sorted ascending by date.
func aggregateByDate(records []models.Timesheet) []DailyHours {
	totals := make(map[string]float64)
	for _, ts := range records {
		totals[ts.Date.Format(models.DateLayout)] += ts.Hours
	}
	out := make([]DailyHours, 0, len(totals))
	for date, hours := range totals {
		out = append(out, DailyHours{Date: date, Hours: hours})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
