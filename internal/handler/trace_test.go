package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dharmasatrya/searchconfirm/internal/cache"
	"github.com/dharmasatrya/searchconfirm/internal/clock"
	"github.com/dharmasatrya/searchconfirm/internal/handler"
	"github.com/dharmasatrya/searchconfirm/internal/search"
	"github.com/dharmasatrya/searchconfirm/internal/store"
	"github.com/dharmasatrya/searchconfirm/pkg/dateparse"
)

func setupTracedServer(t *testing.T) (*echo.Echo, *tracetest.SpanRecorder, *observer.ObservedLogs) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prevTP := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() {
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})

	core, logs := observer.New(zapcore.InfoLevel)
	v := search.NewValidator(clock.Fixed(dateparse.MustParse("08/10/2025")), nil)
	e := echo.New()
	handler.RegisterRoutes(e, handler.NewSearchHandler(v, cache.NewNoOpCache(), store.NewMemory(), zap.New(core)), nil)
	return e, recorder, logs
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestSearchHandler_Tracing(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		wantStatus   int
		wantAccepted bool
		wantCode     codes.Code
	}{
		{
			name:         "accepted search",
			body:         validBody,
			wantStatus:   http.StatusCreated,
			wantAccepted: true,
			wantCode:     codes.Unset,
		},
		{
			name:         "rejected search",
			body:         `{"departure_date":"09/10/2025","departure_airport_code":"syd","return_date":"16/10/2025","destination_airport_code":"xyz","seating_class":"economy","adults":1}`,
			wantStatus:   http.StatusUnprocessableEntity,
			wantAccepted: false,
			wantCode:     codes.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, recorder, _ := setupTracedServer(t)

			rec := postSearch(e, tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			spans := recorder.Ended()
			if len(spans) != 1 {
				t.Fatalf("ended spans = %d, want 1", len(spans))
			}
			span := spans[0]
			if span.Name() != "search.validate" {
				t.Errorf("span name = %q, want search.validate", span.Name())
			}
			accepted, ok := spanAttr(span, "search.accepted")
			if !ok {
				t.Fatal("span missing search.accepted attribute")
			}
			if accepted.AsBool() != tt.wantAccepted {
				t.Errorf("search.accepted = %v, want %v", accepted.AsBool(), tt.wantAccepted)
			}
			if _, ok := spanAttr(span, "search.id"); ok != tt.wantAccepted {
				t.Errorf("search.id present = %v, want %v", ok, tt.wantAccepted)
			}
			if span.Status().Code != tt.wantCode {
				t.Errorf("span status = %v, want %v", span.Status().Code, tt.wantCode)
			}
		})
	}
}

func TestSearchHandler_LogCarriesTraceIDs(t *testing.T) {
	e, recorder, logs := setupTracedServer(t)

	if rec := postSearch(e, validBody); rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	entries := logs.FilterMessage("search confirmed").All()
	if len(entries) != 1 {
		t.Fatalf("got %d confirmation entries, want 1", len(entries))
	}
	fields := entries[0].ContextMap()

	sc := recorder.Ended()[0].SpanContext()
	if got := fields["trace_id"]; got != sc.TraceID().String() {
		t.Errorf("trace_id = %v, want %s", got, sc.TraceID().String())
	}
	if got := fields["span_id"]; got != sc.SpanID().String() {
		t.Errorf("span_id = %v, want %s", got, sc.SpanID().String())
	}
}

func TestSearchHandler_JoinsIncomingTrace(t *testing.T) {
	e, recorder, _ := setupTracedServer(t)

	const traceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/searches", strings.NewReader(validBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("traceparent", "00-"+traceID+"-00f067aa0ba902b7-01")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	if got := spans[0].SpanContext().TraceID().String(); got != traceID {
		t.Errorf("trace id = %s, want %s", got, traceID)
	}
	if got := spans[0].Parent().SpanID().String(); got != "00f067aa0ba902b7" {
		t.Errorf("parent span id = %s, want 00f067aa0ba902b7", got)
	}
}
