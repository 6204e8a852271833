package service

import (
	"context"
	"errors"
	"time"

	"aulario/internal/engine"
	"aulario/internal/lessons/repository"
	"aulario/pkg/config"
	apperrors "aulario/pkg/errors"
	"aulario/pkg/model"
)

// SlotQuery describes a candidate slot being probed before submission.
// ExcludeLessonID lets an in-progress edit ignore its own stored record.
type SlotQuery struct {
	ClassroomID     string `json:"classroom_id,omitempty"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time,omitempty"`
	ExcludeLessonID string `json:"exclude_lesson_id,omitempty"`
}

// WeekCell is one occupied cell of the weekly overview. Free cells are
// omitted from the response.
type WeekCell struct {
	Date         string          `json:"date"`
	Hour         int             `json:"hour"`
	Lessons      []*model.Lesson `json:"lessons,omitempty"`
	Continuation bool            `json:"continuation,omitempty"`
}

// WeekOverview is the Monday-to-Friday projection of the lesson set.
type WeekOverview struct {
	Days      []string   `json:"days"`
	FirstHour int        `json:"first_hour"`
	LastHour  int        `json:"last_hour"`
	Cells     []WeekCell `json:"cells"`
}

// WeekQuery selects the week containing Date. FromHour and ToHour override
// the configured grid hours when non-negative.
type WeekQuery struct {
	Date     string
	FromHour int
	ToHour   int
}

// PlannerService exposes the read-side scheduling probes: conflict dry-runs,
// free-classroom suggestions and the weekly grid. It never writes.
type PlannerService interface {
	Conflicts(ctx context.Context, query *SlotQuery) ([]*model.Lesson, error)
	AvailableClassrooms(ctx context.Context, query *SlotQuery) ([]*model.Classroom, error)
	WeekOverview(ctx context.Context, query *WeekQuery) (*WeekOverview, error)
}

type plannerService struct {
	repo       repository.LessonRepository
	classrooms ClassroomDirectory
	engine     *engine.Engine
	cfg        *config.Config
}

func NewPlannerService(
	repo repository.LessonRepository,
	classrooms ClassroomDirectory,
	eng *engine.Engine,
	cfg *config.Config,
) PlannerService {
	return &plannerService{
		repo:       repo,
		classrooms: classrooms,
		engine:     eng,
		cfg:        cfg,
	}
}

func (s *plannerService) Conflicts(ctx context.Context, query *SlotQuery) ([]*model.Lesson, error) {
	if query.ClassroomID == "" {
		return nil, apperrors.InvalidInput("classroom_id is required for a conflict probe")
	}

	sameDay, err := s.repo.FindByClassroomAndDate(ctx, query.ClassroomID, query.Date)
	if err != nil {
		return nil, apperrors.Internal("Failed to load lessons for conflict probe", err)
	}

	cand := engine.Candidate{
		Booking: engine.Booking{
			ResourceID: query.ClassroomID,
			Date:       query.Date,
			Start:      query.StartTime,
			End:        query.EndTime,
		},
		SelfID: query.ExcludeLessonID,
	}
	conflicts, err := s.engine.Conflicts(cand, nil, toBookings(sameDay))
	if err != nil {
		if errors.Is(err, engine.ErrInvalidInterval) {
			return nil, apperrors.InvalidInput(err.Error())
		}
		return nil, apperrors.Internal("Conflict probe failed", err)
	}

	byID := make(map[string]*model.Lesson, len(sameDay))
	for _, l := range sameDay {
		byID[l.ID] = l
	}
	result := make([]*model.Lesson, 0, len(conflicts))
	for _, c := range conflicts {
		if l, ok := byID[c.ID]; ok {
			result = append(result, l)
		}
	}
	return result, nil
}

func (s *plannerService) AvailableClassrooms(ctx context.Context, query *SlotQuery) ([]*model.Classroom, error) {
	classrooms, err := s.classrooms.FindAllActive(ctx)
	if err != nil {
		return nil, apperrors.Internal("Failed to load classrooms", err)
	}

	lessons, err := s.repo.FindByDateRange(ctx, query.Date, query.Date)
	if err != nil {
		return nil, apperrors.Internal("Failed to load lessons for availability probe", err)
	}

	cand := engine.Candidate{
		Booking: engine.Booking{
			Date:  query.Date,
			Start: query.StartTime,
			End:   query.EndTime,
		},
		SelfID: query.ExcludeLessonID,
	}
	free, err := s.engine.AvailableResources(cand, toResources(classrooms), toBookings(lessons))
	if err != nil {
		if errors.Is(err, engine.ErrInvalidInterval) {
			return nil, apperrors.InvalidInput(err.Error())
		}
		return nil, apperrors.Internal("Availability probe failed", err)
	}

	byID := make(map[string]*model.Classroom, len(classrooms))
	for _, c := range classrooms {
		byID[c.ID] = c
	}
	result := make([]*model.Classroom, 0, len(free))
	for _, r := range free {
		if c, ok := byID[r.ID]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

func (s *plannerService) WeekOverview(ctx context.Context, query *WeekQuery) (*WeekOverview, error) {
	ref, err := time.ParseInLocation(engine.DateLayout, query.Date, time.Local)
	if err != nil {
		return nil, apperrors.InvalidInput("date must be an ISO calendar date (e.g. 2026-03-02)")
	}

	monday := engine.MondayOf(ref)
	friday := monday.AddDate(0, 0, 4)
	lessons, err := s.repo.FindByDateRange(ctx,
		monday.Format(engine.DateLayout),
		friday.Format(engine.DateLayout),
	)
	if err != nil {
		return nil, apperrors.Internal("Failed to load lessons for week overview", err)
	}

	hours := engine.HourRange{First: s.cfg.GridFirstHour, Last: s.cfg.GridLastHour}
	if query.FromHour >= 0 {
		hours.First = query.FromHour
	}
	if query.ToHour >= 0 {
		hours.Last = query.ToHour
	}
	grid, err := s.engine.WeekGrid(ref, hours, toBookings(lessons), func(b engine.Booking) string {
		return b.Label
	})
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	byID := make(map[string]*model.Lesson, len(lessons))
	for _, l := range lessons {
		byID[l.ID] = l
	}

	overview := &WeekOverview{
		Days:      grid.Days,
		FirstHour: hours.First,
		LastHour:  hours.Last,
		Cells:     []WeekCell{},
	}
	for _, day := range grid.Days {
		for hour := hours.First; hour <= hours.Last; hour++ {
			cell := grid.Cell(day, hour)
			if len(cell.Anchored) == 0 && !cell.Continuation {
				continue
			}
			wc := WeekCell{Date: day, Hour: hour, Continuation: cell.Continuation}
			for _, b := range cell.Anchored {
				if l, ok := byID[b.ID]; ok {
					wc.Lessons = append(wc.Lessons, l)
				}
			}
			overview.Cells = append(overview.Cells, wc)
		}
	}
	return overview, nil
}
