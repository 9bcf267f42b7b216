package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/dharmasatrya/searchconfirm/internal/cache"
	"github.com/dharmasatrya/searchconfirm/internal/catalog"
	"github.com/dharmasatrya/searchconfirm/internal/logger"
	"github.com/dharmasatrya/searchconfirm/internal/models"
	"github.com/dharmasatrya/searchconfirm/internal/search"
	"github.com/dharmasatrya/searchconfirm/internal/store"
)

const (
	tracerName = "github.com/dharmasatrya/searchconfirm/internal/handler"

	errSearchRejected = "search_rejected"
)

type SearchHandler struct {
	validator *search.Validator
	cache     cache.Cache
	store     *store.Memory
	logger    *zap.Logger
}

func NewSearchHandler(v *search.Validator, c cache.Cache, s *store.Memory, l *zap.Logger) *SearchHandler {
	if l == nil {
		l = zap.NewNop()
	}
	return &SearchHandler{
		validator: v,
		cache:     c,
		store:     s,
		logger:    l,
	}
}

func (h *SearchHandler) Create(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var body models.SearchRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.HeaderCarrier(c.Request().Header))
	ctx, span := otel.Tracer(tracerName).Start(ctx, "search.validate")
	defer span.End()
	log := logger.WithTrace(ctx, h.logger)

	req := body.ToSearch()
	today := h.validator.Today()
	meta := models.SearchMetadata{Today: today.String()}

	if verdict, found := h.cache.Get(ctx, req, today); found && !verdict.Accepted {
		meta.CacheHit = true
		meta.ValidationTimeUs = time.Since(startTime).Microseconds()
		span.SetAttributes(attribute.Bool("search.accepted", false), attribute.Bool("search.cache_hit", true))
		return c.JSON(http.StatusUnprocessableEntity, models.SearchResponse{
			Error:    errSearchRejected,
			Accepted: false,
			Reason:   verdict.Reason,
			Metadata: meta,
		})
	}

	var rec search.SearchRecord
	err := h.validator.ValidateOn(req, &rec, today)
	meta.ValidationTimeUs = time.Since(startTime).Microseconds()

	verdict := cache.Verdict{Accepted: err == nil}
	if err != nil {
		verdict.Reason = reason(err)
	}
	if cacheErr := h.cache.Set(ctx, req, today, verdict); cacheErr != nil {
		log.Warn("failed to cache verdict", zap.Error(cacheErr))
	}

	span.SetAttributes(attribute.Bool("search.accepted", verdict.Accepted))
	if err != nil {
		span.SetStatus(codes.Error, verdict.Reason)
		return c.JSON(http.StatusUnprocessableEntity, models.SearchResponse{
			Error:    errSearchRejected,
			Accepted: false,
			Reason:   verdict.Reason,
			Metadata: meta,
		})
	}

	id := uuid.New().String()
	h.store.Save(id, &rec)
	span.SetAttributes(attribute.String("search.id", id))

	log.Info("search confirmed",
		zap.String("search_id", id),
		zap.String("origin", rec.DepartureAirportCode()),
		zap.String("destination", rec.DestinationAirportCode()),
		zap.String("departure_date", rec.DepartureDate()),
		zap.Int("passengers", rec.Request().TotalPassengers()),
	)

	return c.JSON(http.StatusCreated, models.SearchResponse{
		SearchID: id,
		Accepted: true,
		Search:   models.NewConfirmedSearch(&rec),
		Metadata: meta,
	})
}

func (h *SearchHandler) Get(c echo.Context) error {
	id := c.Param("id")

	rec, ok := h.store.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "not_found",
			Message: "No confirmed search with id " + id,
			Code:    http.StatusNotFound,
		})
	}

	return c.JSON(http.StatusOK, models.SearchResponse{
		SearchID: id,
		Accepted: true,
		Search:   models.NewConfirmedSearch(&rec),
	})
}

func CatalogHandler(c echo.Context) error {
	airportCodes := catalog.Airports()
	airports := make([]models.Airport, 0, len(airportCodes))
	for _, code := range airportCodes {
		city, _ := catalog.AirportCity(code)
		airports = append(airports, models.Airport{Code: code, City: city})
	}

	return c.JSON(http.StatusOK, models.CatalogResponse{
		Airports:       airports,
		SeatingClasses: catalog.SeatingClasses(),
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// reason reduces err to the rule that failed, dropping parser detail.
func reason(err error) string {
	var ve search.ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	return err.Error()
}
