package worker

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sysafari.com/customs/costsim/config"
	"sysafari.com/customs/costsim/engine"
	"sysafari.com/customs/costsim/sheet"
)

func newTestWorker(t *testing.T, publish func(string) error) (*Worker, *sheet.Reporter) {
	t.Helper()
	v := viper.New()
	v.SetConfigFile("../.costsim.yaml.example")
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadInConfig())
	settings, err := config.LoadSettings(v)
	require.NoError(t, err)

	tables := engine.NewTables(
		[]engine.TariffEntry{{Code: "84713000", CumulativeWithTax: 38, CumulativeWithoutTax: 20}},
		nil,
		[]engine.PortFeeEntry{{Category: "general", Rate: 2000}},
	)
	logger, _ := test.NewNullLogger()
	e, err := engine.New(tables, settings, log.NewEntry(logger))
	require.NoError(t, err)
	reporter := sheet.NewReporter(t.TempDir())
	return New(e, reporter, publish), reporter
}

const request = `{
  "shipment": {
    "reference": "MQ-7",
    "incoterm": "FOB",
    "transport_mode": "sea",
    "container_type": "20ft",
    "container_count": 1,
    "route": "route_a",
    "payment_mode": "transfer",
    "port_category": "general",
    "zone": "zone1",
    "exchange_rate": 100,
    "declared_total": 10000
  },
  "lines": [{"code": "8471.30.00", "quantity": 10, "unit_price": 1000, "net_weight": 10000}],
  "report": true
}`

func TestProcess(t *testing.T) {
	w, reporter := newTestWorker(t, nil)

	for name, msg := range map[string]string{"raw": request, "quoted": strconv.Quote(request)} {
		t.Run(name, func(t *testing.T) {
			res := w.Process(msg)
			require.Equal(t, StatusSuccess, res.Status, res.Error)
			assert.Equal(t, "MQ-7", res.Reference)
			assert.Equal(t, 1000000.0, res.Result.Breakdown.GoodsValue)
			assert.Equal(t, engine.StatusComplete, res.Result.Status)

			_, err := reporter.Path(res.ReportFilename)
			assert.NoError(t, err)
		})
	}
}

func TestProcessFailures(t *testing.T) {
	w, _ := newTestWorker(t, nil)

	res := w.Process("{not json")
	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.Error, "Deserialization")

	res = w.Process(`{"shipment": {"reference": "MQ-8"}, "lines": []}`)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.Error, "no line items")

	res = w.Process(`{"shipment": {"reference": "MQ-9"}, "lines": [{"code": "8471", "quantity": 1}]}`)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, "MQ-9", res.Reference)
	assert.Contains(t, res.Error, "exchange rate")
	assert.Nil(t, res.Result)
}

func TestHandlePublishesResponse(t *testing.T) {
	var published []string
	w, _ := newTestWorker(t, func(body string) error {
		published = append(published, body)
		return nil
	})

	w.Handle(request)
	w.Handle("garbage")
	require.Len(t, published, 2)

	var first, second Response
	require.NoError(t, json.Unmarshal([]byte(published[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(published[1]), &second))
	assert.Equal(t, StatusSuccess, first.Status)
	assert.NotEmpty(t, first.ReportFilename)
	assert.Equal(t, StatusFailed, second.Status)

	failing, _ := newTestWorker(t, func(string) error { return errors.New("broker down") })
	assert.NotPanics(t, func() { failing.Handle(request) })
}
