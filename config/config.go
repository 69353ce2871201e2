package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"sysafari.com/customs/costsim/engine"
	"sysafari.com/customs/costsim/rabbit"
)

// SettingsPrefix is the config subtree holding the engine's numeric parameters.
const SettingsPrefix = "settings"

// Rate-table sources.
const (
	RateSourceMySQL    = "mysql"
	RateSourceWorkbook = "xlsx"
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Port     string
	MySQL    MySQL
	RabbitMQ RabbitMQ
	Report   Report
	Rates    Rates
	Log      Log
}

type MySQL struct {
	Url             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RabbitMQ struct {
	Enabled       bool
	Url           string
	Exchange      string
	ExchangeType  string
	RequestQueue  string
	ResponseQueue string
}

// Request returns the queue compute requests are consumed from.
func (r RabbitMQ) Request() *rabbit.Rabbit {
	return &rabbit.Rabbit{Url: r.Url, Exchange: r.Exchange, ExchangeType: r.ExchangeType, Queue: r.RequestQueue}
}

// Response returns the queue compute results are published to.
func (r RabbitMQ) Response() *rabbit.Rabbit {
	return &rabbit.Rabbit{Url: r.Url, Exchange: r.Exchange, ExchangeType: r.ExchangeType, Queue: r.ResponseQueue}
}

type Report struct {
	// TmpDir is the root of the dated report directories.
	TmpDir string
}

type Rates struct {
	Source   string
	Workbook string
}

type Log struct {
	Base  string
	Level string
}

// SetDefaults registers the defaults of every non-settings key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "1324")
	v.SetDefault("mysql.max-open-conns", 10)
	v.SetDefault("mysql.max-idle-conns", 10)
	v.SetDefault("mysql.conn-max-lifetime", "3m")
	v.SetDefault("rabbitmq.enabled", false)
	v.SetDefault("rabbitmq.exchange-type", "direct")
	v.SetDefault("rabbitmq.queue.cost-req", "costsim.cost.req")
	v.SetDefault("rabbitmq.queue.cost-res", "costsim.cost.res")
	v.SetDefault("report.tmp.dir", "/tmp/costsim")
	v.SetDefault("rates.source", RateSourceMySQL)
	v.SetDefault("log.level", "info")
}

// Load reads the service sections of v.
func Load(v *viper.Viper) (*Config, error) {
	c := &Config{
		Port: v.GetString("port"),
		MySQL: MySQL{
			Url:             v.GetString("mysql.url"),
			MaxOpenConns:    v.GetInt("mysql.max-open-conns"),
			MaxIdleConns:    v.GetInt("mysql.max-idle-conns"),
			ConnMaxLifetime: v.GetDuration("mysql.conn-max-lifetime"),
		},
		RabbitMQ: RabbitMQ{
			Enabled:       v.GetBool("rabbitmq.enabled"),
			Url:           v.GetString("rabbitmq.url"),
			Exchange:      v.GetString("rabbitmq.exchange"),
			ExchangeType:  v.GetString("rabbitmq.exchange-type"),
			RequestQueue:  v.GetString("rabbitmq.queue.cost-req"),
			ResponseQueue: v.GetString("rabbitmq.queue.cost-res"),
		},
		Report: Report{TmpDir: v.GetString("report.tmp.dir")},
		Rates: Rates{
			Source:   strings.ToLower(v.GetString("rates.source")),
			Workbook: v.GetString("rates.workbook"),
		},
		Log: Log{
			Base:  v.GetString("log.log-base"),
			Level: v.GetString("log.level"),
		},
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch c.Rates.Source {
	case RateSourceMySQL:
		if c.MySQL.Url == "" {
			return fmt.Errorf("%w: mysql.url is required when rates.source is mysql", ErrInvalidConfig)
		}
	case RateSourceWorkbook:
		if c.Rates.Workbook == "" {
			return fmt.Errorf("%w: rates.workbook is required when rates.source is xlsx", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown rates.source %q", ErrInvalidConfig, c.Rates.Source)
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.Url == "" {
		return fmt.Errorf("%w: rabbitmq.url is required when rabbitmq is enabled", ErrInvalidConfig)
	}
	if c.Report.TmpDir == "" {
		return fmt.Errorf("%w: report.tmp.dir is empty", ErrInvalidConfig)
	}
	return nil
}

// LoadSettings flattens the settings subtree into the engine's bag, keyed
// without the prefix. Non-numeric leaves are rejected.
func LoadSettings(v *viper.Viper) (engine.Settings, error) {
	prefix := SettingsPrefix + "."
	settings := engine.Settings{}
	for _, key := range v.AllKeys() {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		value, err := cast.ToFloat64E(v.Get(key))
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not a number: %v", ErrInvalidConfig, key, err)
		}
		settings[strings.TrimPrefix(key, prefix)] = value
	}
	if len(settings) == 0 {
		return nil, fmt.Errorf("%w: no %s configured", ErrInvalidConfig, SettingsPrefix)
	}
	return settings, nil
}
