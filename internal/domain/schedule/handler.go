package schedule

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/theatreops/theatreops/internal/domain/catalog"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/cases", h.FilterCases)
	api.GET("/cases/:id", h.GetCase)
	api.GET("/theatres/:theatre/cases", h.CasesForTheatre)

	api.POST("/cases/reorder", h.Reorder)
	api.POST("/cases/:id/move", h.MoveCase)
	api.POST("/cases/:id/staff", h.ReassignStaff)
	api.POST("/cases/:id/status", h.SetStatus)
	api.PUT("/cases/:id/notes", h.AnnotateCase)

	api.POST("/schedule/generate", h.GenerateSchedule)
}

// FilterCases handles GET /cases. With only a date it is the calendar
// query; with more parameters it is the full conjunctive filter.
func (h *Handler) FilterCases(c echo.Context) error {
	var f Filter
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if from := c.QueryParam("from"); from != "" {
		d, err := time.Parse("2006-01-02", from)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
		}
		f.From = &d
	}
	if to := c.QueryParam("to"); to != "" {
		d, err := time.Parse("2006-01-02", to)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
		}
		f.To = &d
	}
	if date := c.QueryParam("date"); date != "" {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
		f.From = &d
		f.To = nil
	}
	items, err := h.svc.Filter(c.Request().Context(), f)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetCase(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	item, err := h.svc.GetCase(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "case not found")
	}
	return c.JSON(http.StatusOK, item)
}

func (h *Handler) CasesForTheatre(c echo.Context) error {
	theatreID := c.Param("theatre")
	if date := c.QueryParam("date"); date != "" {
		d, err := time.Parse("2006-01-02", date)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		}
		items, err := h.svc.CasesForTheatreDate(c.Request().Context(), theatreID, d)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return c.JSON(http.StatusOK, items)
	}
	items, err := h.svc.CasesForTheatre(c.Request().Context(), theatreID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

type reorderRequest struct {
	CaseA uuid.UUID `json:"case_a"`
	CaseB uuid.UUID `json:"case_b"`
}

func (h *Handler) Reorder(c echo.Context) error {
	var req reorderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Reorder(c.Request().Context(), req.CaseA, req.CaseB); err != nil {
		return reorderHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

type moveRequest struct {
	Position int `json:"position"`
}

func (h *Handler) MoveCase(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req moveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.MoveCase(c.Request().Context(), id, req.Position); err != nil {
		return reorderHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func reorderHTTPError(err error) error {
	switch {
	case errors.Is(err, ErrCaseNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidReorder), errors.Is(err, ErrBadPosition):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrOrderConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

type reassignRequest struct {
	Role    catalog.Role `json:"role"`
	StaffID uuid.UUID    `json:"staff_id"`
}

func (h *Handler) ReassignStaff(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req reassignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.ReassignStaff(c.Request().Context(), id, req.Role, req.StaffID); err != nil {
		switch {
		case errors.Is(err, ErrCaseNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrAssignment):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.NoContent(http.StatusNoContent)
}

type statusRequest struct {
	Status Status `json:"status"`
}

func (h *Handler) SetStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.SetStatus(c.Request().Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrCaseNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrInvalidTransition):
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.NoContent(http.StatusNoContent)
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (h *Handler) AnnotateCase(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req notesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.AnnotateCase(c.Request().Context(), id, req.Notes); err != nil {
		if errors.Is(err, ErrCaseNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

type generateRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Seed int64  `json:"seed"`
}

type generateResponse struct {
	Cases   []*Case  `json:"cases"`
	Skipped []string `json:"skipped_theatre_days,omitempty"`
}

func (h *Handler) GenerateSchedule(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return echo.NewHTTPError(http.StatusBadRequest, "to must not be before from")
	}
	cases, allocErrs, err := h.svc.GenerateSchedule(c.Request().Context(), from, to, req.Seed)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	resp := generateResponse{Cases: cases}
	for _, e := range allocErrs {
		resp.Skipped = append(resp.Skipped, e.Error())
	}
	return c.JSON(http.StatusCreated, resp)
}
