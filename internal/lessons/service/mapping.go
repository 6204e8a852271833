package service

import (
	"aulario/internal/engine"
	"aulario/pkg/model"
)

// toBooking projects a lesson onto the engine's booking shape. The label
// prefers the subject, then the course, then the lesson name, matching what
// the week view displays.
func toBooking(l *model.Lesson) engine.Booking {
	label := l.SubjectName
	if label == "" {
		label = l.CourseName
	}
	if label == "" {
		label = l.Name
	}
	return engine.Booking{
		ID:         l.ID,
		ResourceID: l.ClassroomID,
		Date:       l.Date,
		Start:      l.StartTime,
		End:        l.EndTime,
		Label:      label,
		Completed:  l.IsCompleted(),
	}
}

func toBookings(lessons []*model.Lesson) []engine.Booking {
	bookings := make([]engine.Booking, 0, len(lessons))
	for _, l := range lessons {
		bookings = append(bookings, toBooking(l))
	}
	return bookings
}

func toResources(classrooms []*model.Classroom) []engine.Resource {
	resources := make([]engine.Resource, 0, len(classrooms))
	for _, c := range classrooms {
		resources = append(resources, engine.Resource{ID: c.ID, Name: c.Name})
	}
	return resources
}
