package engine

import (
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
)

// Engine holds long-lived reference data for repeated computations. Reloading
// tables or settings means building a new Engine; an Engine is never patched.
type Engine struct {
	tables   RateTables
	settings Settings
	logger   *log.Entry
}

// New builds an Engine over tables and settings. A nil logger uses the
// standard logrus logger.
func New(tables RateTables, settings Settings, logger *log.Entry) (*Engine, error) {
	if tables == nil {
		return nil, errors.New("engine: rate tables are required")
	}
	if settings == nil {
		return nil, errors.New("engine: settings are required")
	}
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	if err := CheckRPIContinuity(settings); err != nil && !errors.Is(err, ErrMissingSetting) {
		logger.Warnf("RPI bands are discontinuous: %v", err)
	}
	return &Engine{tables: tables, settings: settings, logger: logger}, nil
}

// Compute runs the pipeline over the engine's reference data.
func (e *Engine) Compute(shipment ShipmentContext, lines []LineItem, opts Options) (*Result, error) {
	start := time.Now()
	result, err := Compute(Input{
		Shipment: shipment,
		Lines:    lines,
		Settings: e.settings,
		Tables:   e.tables,
		Options:  opts,
	})
	fields := log.Fields{
		"reference": shipment.Reference,
		"lines":     len(lines),
		"elapsed":   time.Since(start).String(),
	}
	if err != nil {
		e.logger.WithFields(fields).Errorf("Compute landed cost failed: %v", err)
		return nil, err
	}
	fields["status"] = result.Status
	fields["total"] = result.Breakdown.Total
	entry := e.logger.WithFields(fields)
	if len(result.Unmatched) > 0 {
		entry = entry.WithField("unmatched", len(result.Unmatched))
	}
	if result.Reconciliation.RequiresReview {
		entry.Warn("Landed cost computed, declared totals need review")
	} else {
		entry.Info("Landed cost computed")
	}
	return result, nil
}

// Resolver returns a missing-code resolver over the engine's tariff table.
func (e *Engine) Resolver() *Resolver {
	return NewResolver(e.tables)
}

// Tables returns the engine's rate tables.
func (e *Engine) Tables() RateTables {
	return e.tables
}

// Settings returns the engine's settings bag.
func (e *Engine) Settings() Settings {
	return e.settings
}
