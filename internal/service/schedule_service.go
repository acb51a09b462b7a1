package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/calendar"
	"github.com/VISWAJIT-PS/photo-lens-connect-sub001/internal/models"
	appErrors "github.com/VISWAJIT-PS/photo-lens-connect-sub001/pkg/errors"
)

// maxVisiblePerDay caps how many entries a month cell shows before the
// remainder collapses into the overflow counter.
const maxVisiblePerDay = 2

type scheduleBookingRepository interface {
	ListByDate(ctx context.Context, photographerID string, date time.Time) ([]models.BookingEntry, error)
	ListByDateRange(ctx context.Context, photographerID string, from, to time.Time) ([]models.BookingEntry, error)
	List(ctx context.Context, filter models.BookingFilter) ([]models.BookingEntry, int, error)
}

// ScheduleService builds the calendar projections: month grid, week grid,
// hourly day view and the past/upcoming booking tabs. Projections are
// read-only and cached; writes elsewhere invalidate by pattern.
type ScheduleService struct {
	repo     scheduleBookingRepository
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduleService constructs the projection service.
func NewScheduleService(repo scheduleBookingRepository, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger, now: time.Now}
}

// MonthCell is one day in the month projection. Day is nil for the leading
// padding cells that align the first of the month to its weekday column.
type MonthCell struct {
	Day      *time.Time           `json:"day"`
	IsPast   bool                 `json:"is_past"`
	Entries  []models.BookingView `json:"entries"`
	Overflow int                  `json:"overflow"`
}

// MonthView is the month grid projection.
type MonthView struct {
	Year  int         `json:"year"`
	Month time.Month  `json:"month"`
	Cells []MonthCell `json:"cells"`
}

// WeekDay is one column of the week projection.
type WeekDay struct {
	Day     time.Time            `json:"day"`
	IsToday bool                 `json:"is_today"`
	IsPast  bool                 `json:"is_past"`
	Entries []models.BookingView `json:"entries"`
}

// WeekView is the week grid projection.
type WeekView struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Days  []WeekDay `json:"days"`
}

// DaySlot is one half-hour row of the day projection.
type DaySlot struct {
	Time      string               `json:"time"`
	IsPast    bool                 `json:"is_past"`
	IsCurrent bool                 `json:"is_current"`
	Entries   []models.BookingView `json:"entries"`
}

// DayView is the hourly day projection.
type DayView struct {
	Date  time.Time `json:"date"`
	Slots []DaySlot `json:"slots"`
}

// BookingTabs splits a photographer's bookings into past and upcoming lists.
// Blocked mirrors are excluded from both.
type BookingTabs struct {
	Past     []models.BookingView `json:"past"`
	Upcoming []models.BookingView `json:"upcoming"`
}

// MonthView projects all entries of the month containing ref onto the grid.
func (s *ScheduleService) MonthView(ctx context.Context, photographerID string, ref time.Time) (*MonthView, error) {
	key := fmt.Sprintf("%smonth:%s", scheduleCachePrefix(photographerID), ref.Format("2006-01"))
	var cached MonthView
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	grid := calendar.MonthGrid(ref)
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	entries, err := s.repo.ListByDateRange(ctx, photographerID, first, last)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load month entries")
	}

	byDay := make(map[string][]models.BookingView, len(entries))
	for _, e := range entries {
		k := calendar.Truncate(e.EventDate).Format("2006-01-02")
		byDay[k] = append(byDay[k], models.NewBookingView(e))
	}

	now := s.now()
	view := &MonthView{Year: ref.Year(), Month: ref.Month(), Cells: make([]MonthCell, 0, len(grid))}
	for _, day := range grid {
		cell := MonthCell{Day: day}
		if day != nil {
			cell.IsPast = calendar.IsPastDate(now, *day)
			dayEntries := byDay[day.Format("2006-01-02")]
			if len(dayEntries) > maxVisiblePerDay {
				cell.Overflow = len(dayEntries) - maxVisiblePerDay
				dayEntries = dayEntries[:maxVisiblePerDay]
			}
			cell.Entries = dayEntries
		}
		view.Cells = append(view.Cells, cell)
	}

	s.store(ctx, key, view)
	return view, nil
}

// WeekView projects the Sunday-to-Saturday week containing ref.
func (s *ScheduleService) WeekView(ctx context.Context, photographerID string, ref time.Time) (*WeekView, error) {
	key := fmt.Sprintf("%sweek:%s", scheduleCachePrefix(photographerID), calendar.WeekGrid(ref)[0].Format("2006-01-02"))
	var cached WeekView
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	days := calendar.WeekGrid(ref)
	entries, err := s.repo.ListByDateRange(ctx, photographerID, days[0], days[6])
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load week entries")
	}

	byDay := make(map[string][]models.BookingView, len(entries))
	for _, e := range entries {
		k := calendar.Truncate(e.EventDate).Format("2006-01-02")
		byDay[k] = append(byDay[k], models.NewBookingView(e))
	}

	now := s.now()
	today := calendar.Truncate(now)
	view := &WeekView{Start: days[0], End: days[6], Days: make([]WeekDay, 0, 7)}
	for _, day := range days {
		view.Days = append(view.Days, WeekDay{
			Day:     day,
			IsToday: day.Equal(today),
			IsPast:  calendar.IsPastDate(now, day),
			Entries: byDay[day.Format("2006-01-02")],
		})
	}

	s.store(ctx, key, view)
	return view, nil
}

// DayView projects one date onto the half-hour slot rows. An entry appears in
// every slot it spans; all-day entries appear only in the first slot.
func (s *ScheduleService) DayView(ctx context.Context, photographerID string, date time.Time) (*DayView, error) {
	day := calendar.Truncate(date)
	key := fmt.Sprintf("%sday:%s", scheduleCachePrefix(photographerID), day.Format("2006-01-02"))
	var cached DayView
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	entries, err := s.repo.ListByDate(ctx, photographerID, day)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load day entries")
	}

	now := s.now()
	slots := calendar.HourlySlots()
	view := &DayView{Date: day, Slots: make([]DaySlot, 0, len(slots))}
	for i, slot := range slots {
		row := DaySlot{
			Time:      slot,
			IsPast:    calendar.IsPastTime(now, day, slot),
			IsCurrent: calendar.IsCurrentTimeSlot(now, day, slot),
		}
		for _, e := range entries {
			if calendar.SlotMatches(e.StartTime, e.EndTime, slot, i) {
				row.Entries = append(row.Entries, models.NewBookingView(e))
			}
		}
		view.Slots = append(view.Slots, row)
	}

	s.store(ctx, key, view)
	return view, nil
}

// Tabs splits a photographer's bookings into past (most recent first) and
// upcoming (soonest first). Today counts as upcoming.
func (s *ScheduleService) Tabs(ctx context.Context, photographerID string) (*BookingTabs, error) {
	entries, _, err := s.repo.List(ctx, models.BookingFilter{PhotographerID: photographerID, PageSize: 200})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load bookings")
	}

	now := s.now()
	tabs := &BookingTabs{Past: []models.BookingView{}, Upcoming: []models.BookingView{}}
	for _, e := range entries {
		if e.Status == models.BookingBlocked {
			continue
		}
		view := models.NewBookingView(e)
		if calendar.IsPastDate(now, e.EventDate) {
			tabs.Past = append(tabs.Past, view)
		} else {
			tabs.Upcoming = append(tabs.Upcoming, view)
		}
	}
	sort.SliceStable(tabs.Past, func(i, j int) bool {
		return tabs.Past[i].EventDate.After(tabs.Past[j].EventDate)
	})
	sort.SliceStable(tabs.Upcoming, func(i, j int) bool {
		return tabs.Upcoming[i].EventDate.Before(tabs.Upcoming[j].EventDate)
	})
	return tabs, nil
}

func (s *ScheduleService) store(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("failed to cache schedule projection", zap.String("key", key), zap.Error(err))
	}
}

func scheduleCachePrefix(photographerID string) string {
	return fmt.Sprintf("schedule:%s:", photographerID)
}

// scheduleCachePattern matches every cached projection of one photographer.
func scheduleCachePattern(photographerID string) string {
	return scheduleCachePrefix(photographerID) + "*"
}
