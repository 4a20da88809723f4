package Progress

import (
	"errors"
	"math"
	"time"

	"golang.org/x/exp/slices"
	"gorm.io/gorm"

	"KidGrow/Assignments"
	"KidGrow/Models"
)

const DefaultWindowDays = 30

// DailyProgress is one day's completion stats for a child.
type DailyProgress struct {
	Date           Models.DateOnly `json:"date"`
	TotalTasks     int             `json:"total_tasks"`
	CompletedTasks int             `json:"completed_tasks"`
	CompletionPct  int             `json:"completion_pct"`
}

type ChildSummary struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	AgeGroup    string `json:"age_group"`
	AvatarColor string `json:"avatar_color"`
}

// Bundle is the full progress report for one child: all-time totals, the
// trailing streak, the per-day series for the requested window, and the
// child's full measurement history (never window-limited).
type Bundle struct {
	Child         ChildSummary              `json:"child"`
	TotalEver     int                       `json:"total_ever"`
	CompletedEver int                       `json:"completed_ever"`
	StreakDays    int                       `json:"streak_days"`
	DailyProgress []DailyProgress           `json:"daily_progress"`
	Measurements  []Models.ChildMeasurement `json:"measurements"`
}

// Service computes read-only statistics from assignment history. It never
// writes.
type Service struct {
	DB       *gorm.DB
	Location *time.Location
}

func NewService(db *gorm.DB, loc *time.Location) *Service {
	if loc == nil {
		loc = Assignments.DefaultLocation()
	}
	return &Service{DB: db, Location: loc}
}

// GetChildProgress builds the progress bundle for one child over a trailing
// window of the given number of days.
func (s *Service) GetChildProgress(childID, userID uint, days int) (Bundle, error) {
	if days <= 0 {
		days = DefaultWindowDays
	}

	var child Models.Child
	err := s.DB.First(&child, childID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Bundle{}, Assignments.ErrNotFound
	}
	if err != nil {
		return Bundle{}, err
	}
	if child.UserID != userID {
		return Bundle{}, Assignments.ErrForbidden
	}

	since := Models.Today(s.Location).AddDays(-days)
	daily, err := s.dailySeries(childID, since)
	if err != nil {
		return Bundle{}, err
	}

	totalEver, completedEver, err := s.allTimeTotals(childID)
	if err != nil {
		return Bundle{}, err
	}

	var measurements []Models.ChildMeasurement
	err = s.DB.Where("child_id = ?", childID).
		Order("measured_at ASC").
		Find(&measurements).Error
	if err != nil {
		return Bundle{}, err
	}

	return Bundle{
		Child: ChildSummary{
			ID:          child.ID,
			Name:        child.Name,
			AgeGroup:    child.AgeGroup,
			AvatarColor: child.AvatarColor,
		},
		TotalEver:     totalEver,
		CompletedEver: completedEver,
		StreakDays:    CalcStreak(daily),
		DailyProgress: daily,
		Measurements:  measurements,
	}, nil
}

// GetAllProgress builds a bundle for every child of the account, with the
// default window.
func (s *Service) GetAllProgress(userID uint) ([]Bundle, error) {
	var children []Models.Child
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&children).Error
	if err != nil {
		return nil, err
	}

	bundles := make([]Bundle, 0, len(children))
	for _, child := range children {
		bundle, err := s.GetChildProgress(child.ID, userID, DefaultWindowDays)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, bundle)
	}
	return bundles, nil
}

type dayRow struct {
	AssignedDate   Models.DateOnly
	TotalTasks     int
	CompletedTasks int
}

func (s *Service) dailySeries(childID uint, since Models.DateOnly) ([]DailyProgress, error) {
	var rows []dayRow
	err := s.DB.Model(&Models.DailyAssignment{}).
		Select("assigned_date, COUNT(*) AS total_tasks, SUM(CASE WHEN is_completed THEN 1 ELSE 0 END) AS completed_tasks").
		Where("child_id = ? AND assigned_date >= ?", childID, since).
		Group("assigned_date").
		Order("assigned_date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	daily := make([]DailyProgress, 0, len(rows))
	for _, r := range rows {
		daily = append(daily, DailyProgress{
			Date:           r.AssignedDate,
			TotalTasks:     r.TotalTasks,
			CompletedTasks: r.CompletedTasks,
			CompletionPct:  CompletionPct(r.CompletedTasks, r.TotalTasks),
		})
	}
	return daily, nil
}

func (s *Service) allTimeTotals(childID uint) (total, completed int, err error) {
	var row struct {
		TotalTasks     int
		CompletedTasks int
	}
	err = s.DB.Model(&Models.DailyAssignment{}).
		Select("COUNT(*) AS total_tasks, SUM(CASE WHEN is_completed THEN 1 ELSE 0 END) AS completed_tasks").
		Where("child_id = ?", childID).
		Scan(&row).Error
	return row.TotalTasks, row.CompletedTasks, err
}

// CompletionPct is round(completed/total*100), and 0 when total is 0.
func CompletionPct(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// CalcStreak counts consecutive trailing fully-completed days. Walking
// backward one calendar day at a time from the most recent entry, the streak
// grows while each day has at least one assignment and 100% completion; a day
// that is missing, empty, or under 100% stops the walk (zero-assignment days
// break the streak, they are not skipped).
func CalcStreak(daily []DailyProgress) int {
	if len(daily) == 0 {
		return 0
	}

	byDate := make(map[Models.DateOnly]DailyProgress, len(daily))
	latest := daily[0].Date
	for _, d := range daily {
		byDate[d.Date] = d
		if latest.Before(d.Date) {
			latest = d.Date
		}
	}

	streak := 0
	for cursor := latest; ; cursor = cursor.AddDays(-1) {
		day, ok := byDate[cursor]
		if !ok || day.TotalTasks == 0 || day.CompletionPct != 100 {
			break
		}
		streak++
	}
	return streak
}

// SortDailyDesc orders a per-day series most-recent-first, for report output.
func SortDailyDesc(daily []DailyProgress) {
	slices.SortFunc(daily, func(a, b DailyProgress) int {
		return b.Date.Compare(a.Date)
	})
}
