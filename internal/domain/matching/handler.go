package matching

import (
	"net/http"
	"strconv"

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
	api.GET("/matching/staff", h.RankStaff)
}

// RankStaff handles GET /matching/staff?lat=&lon=&role=. Both coordinates
// must be given together; with neither, ranking falls back to rating.
func (h *Handler) RankStaff(c echo.Context) error {
	latStr := c.QueryParam("lat")
	lonStr := c.QueryParam("lon")

	var caller *Location
	if latStr != "" || lonStr != "" {
		if latStr == "" || lonStr == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "lat and lon must be provided together")
		}
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid lat")
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid lon")
		}
		caller = &Location{Latitude: lat, Longitude: lon}
	}

	ranked, err := h.svc.RankStaff(c.Request().Context(), caller, catalog.Role(c.QueryParam("role")))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ranked)
}
