package cmd

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"sysafari.com/customs/costsim/config"
	"sysafari.com/customs/costsim/engine"
	"sysafari.com/customs/costsim/ratestore"
	"sysafari.com/customs/costsim/sheet"
)

// loadEngine builds the engine from the configured settings and rate source.
func loadEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, error) {
	settings, err := config.LoadSettings(viper.GetViper())
	if err != nil {
		return nil, err
	}
	tables, err := loadTables(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return engine.New(tables, settings, nil)
}

func loadTables(ctx context.Context, cfg *config.Config) (*engine.Tables, error) {
	switch cfg.Rates.Source {
	case config.RateSourceWorkbook:
		imp, err := sheet.ImportRatesFile(cfg.Rates.Workbook)
		if err != nil {
			return nil, err
		}
		for _, e := range imp.Errors {
			log.Warnf("Skip rate row: %v", e)
		}
		return ratestore.Build(imp.Tariffs, imp.Exemptions, imp.PortFees), nil
	default:
		db, err := ratestore.Open(cfg.MySQL)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return ratestore.New(db).Load(ctx)
	}
}
