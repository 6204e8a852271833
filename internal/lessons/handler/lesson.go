package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"aulario/internal/lessons/service"
	httputil "aulario/pkg/http"
	"aulario/pkg/logger"
	"aulario/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type LessonHandler struct {
	service service.LessonService
	planner service.PlannerService
	log     *logger.Logger
}

func NewLessonHandler(service service.LessonService, planner service.PlannerService, log *logger.Logger) *LessonHandler {
	return &LessonHandler{
		service: service,
		planner: planner,
		log:     log,
	}
}

func (h *LessonHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var lesson model.Lesson
	if err := json.NewDecoder(r.Body).Decode(&lesson); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &lesson); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, lesson); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *LessonHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	lesson, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, lesson); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *LessonHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	lessons, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, lessons, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *LessonHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.LessonUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), id, &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *LessonHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

// Conflicts is a dry-run probe: it reports which lessons a candidate slot
// would collide with, without persisting anything.
func (h *LessonHandler) Conflicts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query, ok := h.slotQueryFromRequest(w, r, "Conflicts")
	if !ok {
		return
	}

	conflicts, err := h.planner.Conflicts(r.Context(), query)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Conflicts", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{
		"conflicts":   conflicts,
		"schedulable": len(conflicts) == 0,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Conflicts", "operation", "WriteSuccess", "error", err)
	}
}

// Availability suggests which classrooms are free for the probed slot.
func (h *LessonHandler) Availability(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query, ok := h.slotQueryFromRequest(w, r, "Availability")
	if !ok {
		return
	}

	classrooms, err := h.planner.AvailableClassrooms(r.Context(), query)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Availability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, map[string]any{
		"available": classrooms,
	}); err != nil {
		h.log.Error("failed to write success response", "handler", "Availability", "operation", "WriteSuccess", "error", err)
	}
}

// Week returns the Monday-to-Friday grid of the week containing the `date`
// query parameter (today when absent). Optional `from_hour` and `to_hour`
// override the configured grid hours.
func (h *LessonHandler) Week(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	query := &service.WeekQuery{Date: q.Get("date"), FromHour: -1, ToHour: -1}
	if query.Date == "" {
		query.Date = todayISO()
	}

	var ok bool
	if query.FromHour, ok = h.gridHourParam(w, q.Get("from_hour"), "from_hour"); !ok {
		return
	}
	if query.ToHour, ok = h.gridHourParam(w, q.Get("to_hour"), "to_hour"); !ok {
		return
	}

	overview, err := h.planner.WeekOverview(r.Context(), query)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Week", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, overview); err != nil {
		h.log.Error("failed to write success response", "handler", "Week", "operation", "WriteSuccess", "error", err)
	}
}

// gridHourParam parses an optional hour query parameter; -1 means unset.
func (h *LessonHandler) gridHourParam(w http.ResponseWriter, raw, name string) (int, bool) {
	if raw == "" {
		return -1, true
	}
	hour, err := strconv.Atoi(raw)
	if err != nil || hour < 0 || hour > 23 {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "'" + name + "' must be an hour between 0 and 23",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Week", "operation", "WriteJSON", "error", writeErr)
		}
		return 0, false
	}
	return hour, true
}

func (h *LessonHandler) slotQueryFromRequest(w http.ResponseWriter, r *http.Request, handlerName string) (*service.SlotQuery, bool) {
	q := r.URL.Query()
	query := &service.SlotQuery{
		ClassroomID:     q.Get("classroom_id"),
		Date:            q.Get("date"),
		StartTime:       q.Get("start_time"),
		EndTime:         q.Get("end_time"),
		ExcludeLessonID: q.Get("exclude_lesson_id"),
	}

	if query.Date == "" || query.StartTime == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Both 'date' and 'start_time' query parameters are required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", handlerName, "operation", "WriteJSON", "error", writeErr)
		}
		return nil, false
	}
	return query, true
}

func (h *LessonHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/lessons", h.Create)
	router.GET("/api/v1/lessons", h.GetAll)
	router.GET("/api/v1/lessons/id/:id", h.GetByID)
	router.PATCH("/api/v1/lessons/id/:id", h.Update)
	router.DELETE("/api/v1/lessons/id/:id", h.Delete)
	router.GET("/api/v1/lessons/conflicts", h.Conflicts)
	router.GET("/api/v1/lessons/availability", h.Availability)
	router.GET("/api/v1/lessons/week", h.Week)
}
