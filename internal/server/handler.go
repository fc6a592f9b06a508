package server

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/litescript/ls-celestial/internal/apperrors"
	"github.com/litescript/ls-celestial/internal/astro"
	"github.com/litescript/ls-celestial/internal/celestial"
	"github.com/litescript/ls-celestial/internal/logging"
)

const maxBodyBytes = 1 << 16

// Runner computes the record for one body.
type Runner interface {
	Run(ctx context.Context, kind celestial.BodyKind, oc celestial.ObserverContext) (*celestial.Record, celestial.Report, error)
}

// locationRequest is the optional request body. Pointers tell a missing or
// null coordinate apart from zero.
type locationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// BodyHandler serves /moon and /mars.
type BodyHandler struct {
	runner Runner
	logger *slog.Logger
	now    func() time.Time
}

// NewBodyHandler constructs the body handler.
func NewBodyHandler(runner Runner, logger *slog.Logger) *BodyHandler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &BodyHandler{
		runner: runner,
		logger: logger.With("component", "http.handler"),
		now:    time.Now,
	}
}

// Body handles GET and POST for a single body.
func (h *BodyHandler) Body(c *gin.Context) {
	kind, err := celestial.ParseBodyKind(c.Param("body"))
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}

	loc, err := extractLocation(c)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}

	oc, err := celestial.NewObserverContext(h.now(), loc)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}

	rec, report, err := h.runner.Run(c.Request.Context(), kind, oc)
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	if failed := report.Failed(); len(failed) > 0 {
		logging.FromContext(c.Request.Context(), h.logger).Debug("partial record",
			"body", kind.String(), "failed_tiers", len(failed))
	}

	if err := Assemble(rec, oc); err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, apperrors.CodeComputationFailed, "failed to assemble response", err))
		return
	}
	body, err := rec.MarshalJSON()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, apperrors.CodeComputationFailed, "failed to encode response", err))
		return
	}
	c.Data(http.StatusOK, binding.MIMEJSON+"; charset=utf-8", body)
}

type field struct {
	path  string
	value any
}

// Assemble adds the request-level fields to a computed record.
func Assemble(rec *celestial.Record, oc celestial.ObserverContext) error {
	ts := astro.ConvertTimeScales(oc.Timestamp)
	fields := []field{
		{"timestamp", oc.Timestamp.Format(time.RFC3339)},
		{"time_scales.utc", ts.JDUTC},
		{"time_scales.tt", ts.JDTT},
		{"time_scales.tdb", ts.JDTDB},
	}
	if oc.HasLocation() {
		fields = append(fields,
			field{"observer.latitude", oc.Location.Latitude},
			field{"observer.longitude", oc.Location.Longitude},
		)
	}
	for _, f := range fields {
		if err := rec.Add(f.path, f.value); err != nil {
			return err
		}
	}
	return nil
}

// extractLocation reads the coordinates from a JSON body, or from query
// parameters when the body is empty. Both coordinates or neither must be
// given.
func extractLocation(c *gin.Context) (*celestial.Location, error) {
	raw, err := readBody(c)
	if err != nil {
		return nil, err
	}

	var req locationRequest
	if len(raw) > 0 {
		if err := binding.JSON.BindBody(raw, &req); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidJSON, "invalid JSON body", err)
		}
	} else if c.Request.Method == http.MethodGet {
		if req.Latitude, err = queryFloat(c, "latitude"); err != nil {
			return nil, err
		}
		if req.Longitude, err = queryFloat(c, "longitude"); err != nil {
			return nil, err
		}
	}

	switch {
	case req.Latitude == nil && req.Longitude == nil:
		return nil, nil
	case req.Latitude == nil || req.Longitude == nil:
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "latitude and longitude must be provided together", nil)
	}
	return &celestial.Location{Latitude: *req.Latitude, Longitude: *req.Longitude}, nil
}

func readBody(c *gin.Context) ([]byte, error) {
	if c.Request.Body == nil {
		return nil, nil
	}
	raw, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidJSON, "request body could not be read", err)
	}
	return bytes.TrimSpace(raw), nil
}

func queryFloat(c *gin.Context, name string) (*float64, error) {
	v, ok := c.GetQuery(name)
	if !ok || v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, name+" must be a number", err)
	}
	return &f, nil
}
