package ratestore

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
	"sysafari.com/customs/costsim/config"
	"sysafari.com/customs/costsim/engine"
)

// Open connects to MySQL with the pool limits of cfg.
func Open(cfg config.MySQL) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", cfg.Url)
	if err != nil {
		return nil, err
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	return db, nil
}

// Store reads the reference tables from MySQL.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Migrate creates missing tables.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range Schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ratestore: migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) Tariffs(ctx context.Context) ([]engine.TariffEntry, error) {
	var rows []engine.TariffEntry
	if err := s.db.SelectContext(ctx, &rows, QueryTariffs); err != nil {
		return nil, fmt.Errorf("ratestore: query tariffs: %w", err)
	}
	return rows, nil
}

func (s *Store) Exemptions(ctx context.Context) ([]engine.ExemptionEntry, error) {
	var rows []engine.ExemptionEntry
	if err := s.db.SelectContext(ctx, &rows, QueryExemptions); err != nil {
		return nil, fmt.Errorf("ratestore: query exemptions: %w", err)
	}
	return rows, nil
}

func (s *Store) PortFees(ctx context.Context) ([]engine.PortFeeEntry, error) {
	var rows []engine.PortFeeEntry
	if err := s.db.SelectContext(ctx, &rows, QueryPortFees); err != nil {
		return nil, fmt.Errorf("ratestore: query port fees: %w", err)
	}
	return rows, nil
}

// TariffCount counts live tariff lines.
func (s *Store) TariffCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, QueryTariffCount); err != nil {
		return 0, fmt.Errorf("ratestore: count tariffs: %w", err)
	}
	return count, nil
}

// Load reads all three tables and builds the engine's in-memory tables.
func (s *Store) Load(ctx context.Context) (*engine.Tables, error) {
	tariffs, err := s.Tariffs(ctx)
	if err != nil {
		return nil, err
	}
	exemptions, err := s.Exemptions(ctx)
	if err != nil {
		return nil, err
	}
	portFees, err := s.PortFees(ctx)
	if err != nil {
		return nil, err
	}
	return Build(tariffs, exemptions, portFees), nil
}

// Save upserts rows in one transaction. Codes are stored normalized.
func (s *Store) Save(ctx context.Context, tariffs []engine.TariffEntry, exemptions []engine.ExemptionEntry, portFees []engine.PortFeeEntry) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ratestore: begin: %w", err)
	}
	defer tx.Rollback()

	for _, t := range tariffs {
		t.Code = engine.NormalizeCode(t.Code)
		if _, err := tx.NamedExecContext(ctx, UpsertTariff, t); err != nil {
			return fmt.Errorf("ratestore: save tariff %s: %w", t.Code, err)
		}
	}
	for _, e := range exemptions {
		e.Code = engine.NormalizeCode(e.Code)
		if _, err := tx.NamedExecContext(ctx, UpsertExemption, e); err != nil {
			return fmt.Errorf("ratestore: save exemption %s: %w", e.Code, err)
		}
	}
	for _, p := range portFees {
		p.Category = strings.ToLower(strings.TrimSpace(p.Category))
		if _, err := tx.NamedExecContext(ctx, UpsertPortFee, p); err != nil {
			return fmt.Errorf("ratestore: save port fee %s: %w", p.Category, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ratestore: commit: %w", err)
	}
	log.WithFields(log.Fields{
		"tariffs":    len(tariffs),
		"exemptions": len(exemptions),
		"port_fees":  len(portFees),
	}).Info("Rate tables saved")
	return nil
}

// Build indexes loaded rows, dropping tariff lines whose cumulative rates
// do not cover their components.
func Build(tariffs []engine.TariffEntry, exemptions []engine.ExemptionEntry, portFees []engine.PortFeeEntry) *engine.Tables {
	valid := tariffs[:0:0]
	for _, t := range tariffs {
		if err := t.Validate(); err != nil {
			log.Warnf("Skip tariff line: %v", err)
			continue
		}
		valid = append(valid, t)
	}
	tables := engine.NewTables(valid, exemptions, portFees)
	nt, ne, np := tables.Len()
	log.WithFields(log.Fields{
		"tariffs":    nt,
		"exemptions": ne,
		"port_fees":  np,
		"skipped":    len(tariffs) - len(valid),
	}).Info("Rate tables loaded")
	return tables
}
