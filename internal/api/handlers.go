package api

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"github.com/aicc6/weather-flick-back-sub000/internal/models"
	"github.com/aicc6/weather-flick-back-sub000/internal/optimizer"
	"github.com/aicc6/weather-flick-back-sub000/internal/places"
	"github.com/aicc6/weather-flick-back-sub000/internal/provider"
	"github.com/aicc6/weather-flick-back-sub000/internal/routecache"
)

// Handler wires the HTTP surface to the planner. The catalog and Redis are
// optional; endpoints that need them answer 503 when they are absent.
type Handler struct {
	planner  *optimizer.Planner
	catalog  *places.Repository
	rdb      *redis.Client
	validate *validator.Validate
}

// NewHandler builds the API handler. catalog and rdb may be nil.
func NewHandler(planner *optimizer.Planner, catalog *places.Repository, rdb *redis.Client) *Handler {
	return &Handler{
		planner:  planner,
		catalog:  catalog,
		rdb:      rdb,
		validate: validator.New(),
	}
}

// RegisterRoutes mounts the API endpoints on the app
func (h *Handler) RegisterRoutes(app *fiber.App) {
	v1 := app.Group("/v1")
	v1.Post("/routes/optimize", h.Optimize)
	v1.Post("/routes/compare", h.Compare)
	v1.Get("/routes/between", h.Between)
	v1.Get("/places", h.Places)

	app.Get("/health", h.Health)
}

// Optimize handles POST /v1/routes/optimize
func (h *Handler) Optimize(c *fiber.Ctx) error {
	var req OptimizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid request body: %v", err),
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("validation failed: %v", err),
		})
	}

	resolved, err := h.resolvePlaces(c, req.Places, req.PlaceIDs)
	if err != nil {
		return h.placesError(c, err)
	}
	if len(resolved) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least one place is required",
		})
	}
	for i, place := range resolved {
		if !place.Location.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("place %d has coordinates out of range", i),
			})
		}
	}
	if req.Start != nil && !req.Start.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "start coordinates out of range",
		})
	}
	if req.Accommodation != nil && !req.Accommodation.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "accommodation coordinates out of range",
		})
	}

	constraints, err := req.Constraints.toConstraints()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	days := req.Days
	if days <= 0 {
		days = 1
	}
	weekdays := weekdaysFrom(req.StartDate, days)

	ctx := c.Context()

	if days == 1 {
		route, err := h.planner.OptimizeDay(ctx, resolved, req.Start, constraints, req.Preferences, weekdays[0], 1)
		if err != nil {
			return h.optimizeError(c, err)
		}
		return c.JSON(OptimizeDayResponse{Route: route})
	}

	// The accommodation, when given, anchors every day of a multi-day trip
	anchor := req.Start
	if req.Accommodation != nil {
		anchor = req.Accommodation
	}

	itinerary, err := h.planner.OptimizeTrip(ctx, resolved, days, anchor, constraints, req.Preferences, weekdays)
	if err != nil {
		return h.optimizeError(c, err)
	}
	return c.JSON(OptimizeTripResponse{Itinerary: itinerary})
}

// Compare handles POST /v1/routes/compare
func (h *Handler) Compare(c *fiber.Ctx) error {
	var req CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid request body: %v", err),
		})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("validation failed: %v", err),
		})
	}

	resolved, err := h.resolvePlaces(c, req.Places, req.PlaceIDs)
	if err != nil {
		return h.placesError(c, err)
	}
	if len(resolved) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least two places are required to compare orders",
		})
	}

	constraints, err := req.Constraints.toConstraints()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	weekday := weekdaysFrom(req.StartDate, 1)[0]

	comparison, err := h.planner.Compare(c.Context(), resolved, req.Start, constraints, weekday)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(comparison)
}

// Between handles GET /v1/routes/between
func (h *Handler) Between(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing required parameters: from and to",
		})
	}

	from, err := parseCoordinates(fromStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid 'from' coordinates: %v", err),
		})
	}
	to, err := parseCoordinates(toStr)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("invalid 'to' coordinates: %v", err),
		})
	}

	constraints := models.DefaultConstraints()
	if modeStr := c.Query("mode"); modeStr != "" {
		mode := models.TransportMode(modeStr)
		if !mode.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("unsupported mode %q", modeStr),
			})
		}
		constraints.TransportModePreference = mode
	}

	var prefs models.Preferences
	switch c.Query("prefer") {
	case "cost":
		prefs.PreferCost = true
	case "speed":
		prefs.PreferSpeed = true
	case "eco":
		prefs.PreferEco = true
	}

	rec, estimate := h.planner.Recommend(c.Context(), from, to, constraints, prefs)
	return c.JSON(BetweenResponse{
		Recommendation: rec,
		Estimate:       estimate,
	})
}

// Places handles GET /v1/places, listing catalog places by category
func (h *Handler) Places(c *fiber.Ctx) error {
	category := c.Query("category")
	if category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "missing required parameter: category",
		})
	}
	if h.catalog == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "place catalog not configured",
		})
	}

	listed, err := h.catalog.GetByCategory(c.Context(), category, c.QueryInt("limit", 20))
	if err != nil {
		log.Printf("catalog listing failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "catalog lookup failed",
		})
	}

	return c.JSON(fiber.Map{
		"places": listed,
		"total":  len(listed),
	})
}

// Health handles the /health endpoint
func (h *Handler) Health(c *fiber.Ctx) error {
	ctx := c.Context()

	status := "healthy"
	httpStatus := fiber.StatusOK
	checks := fiber.Map{}

	if h.rdb != nil {
		redisStatus := "ok"
		if err := routecache.HealthCheck(ctx, h.rdb); err != nil {
			redisStatus = err.Error()
			status = "unhealthy"
			httpStatus = fiber.StatusServiceUnavailable
		}
		checks["redis"] = redisStatus
	} else {
		checks["redis"] = "disabled"
	}

	if h.catalog != nil {
		dbStatus := "ok"
		if err := h.catalog.HealthCheck(ctx); err != nil {
			dbStatus = err.Error()
			status = "unhealthy"
			httpStatus = fiber.StatusServiceUnavailable
		}
		checks["database"] = dbStatus
	} else {
		checks["database"] = "disabled"
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status": status,
		"checks": checks,
	})
}

// errCatalogUnavailable means place_ids were given but no catalog is wired
var errCatalogUnavailable = errors.New("place catalog not configured, inline place data instead")

// resolvePlaces merges inline places with ones referenced by catalog ID
func (h *Handler) resolvePlaces(c *fiber.Ctx, inline []models.Place, ids []string) ([]models.Place, error) {
	resolved := make([]models.Place, 0, len(inline)+len(ids))
	resolved = append(resolved, inline...)

	if len(ids) > 0 {
		if h.catalog == nil {
			return nil, errCatalogUnavailable
		}
		loaded, err := h.catalog.GetByIDs(c.Context(), ids)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, loaded...)
	}

	return resolved, nil
}

// placesError writes the response for a failed place resolution
func (h *Handler) placesError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errCatalogUnavailable) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	log.Printf("catalog lookup failed: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// optimizeError maps planner failures to HTTP statuses. A leg with no
// feasible route is the caller's geography, not a server fault.
func (h *Handler) optimizeError(c *fiber.Ctx, err error) error {
	var noRoute *provider.NoFeasibleRouteError
	if errors.As(err, &noRoute) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "no_feasible_route",
			"message": fmt.Sprintf("no transport mode connects %s to %s: %s",
				noRoute.FromName, noRoute.ToName, noRoute.Reason),
			"from_id": noRoute.FromID,
			"to_id":   noRoute.ToID,
		})
	}

	log.Printf("optimization failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "optimization failed",
	})
}
