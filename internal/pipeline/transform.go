package pipeline

import (
	"errors"
	"log/slog"

	"github.com/couchcryptid/accident-eda/internal/domain"
	"github.com/couchcryptid/accident-eda/internal/observability"
)

// Drop reasons recorded in rows_dropped_total.
const (
	ReasonMissingValue  = "missing_value"
	ReasonBadTimestamp  = "bad_timestamp"
	ReasonBadCoordinate = "bad_coordinate"
	ReasonBadFlag       = "bad_flag"
)

// Deriver turns cleaned rows into accidents with time features. Rows that
// fail to parse are logged, counted and skipped.
type Deriver struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewDeriver creates a Deriver.
func NewDeriver(logger *slog.Logger, metrics *observability.Metrics) *Deriver {
	return &Deriver{logger: logger, metrics: metrics}
}

// Derive parses every row and derives Hour, Day and Month.
func (d *Deriver) Derive(raws []domain.RawAccident) []domain.Accident {
	out := make([]domain.Accident, 0, len(raws))
	for i := range raws {
		a, err := domain.ParseAccident(raws[i])
		if err != nil {
			reason := dropReason(err)
			d.logger.Warn("parse failed, skipping row", "error", err, "line", raws[i].Line, "id", raws[i].ID, "reason", reason)
			d.metrics.RowsDropped.WithLabelValues(reason).Inc()
			continue
		}
		out = append(out, domain.DeriveTimeFeatures(a))
	}
	return out
}

func dropReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTimestamp):
		return ReasonBadTimestamp
	case errors.Is(err, domain.ErrInvalidCoordinate):
		return ReasonBadCoordinate
	default:
		return ReasonBadFlag
	}
}
