package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
	"sysafari.com/customs/costsim/config"
	"sysafari.com/customs/costsim/engine"
	"sysafari.com/customs/costsim/rabbit"
	"sysafari.com/customs/costsim/sheet"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Request is a compute request read from the request queue.
type Request struct {
	Shipment engine.ShipmentContext `json:"shipment"`
	Lines    []engine.LineItem      `json:"lines"`
	Options  engine.Options         `json:"options"`
	// Report asks for an xlsx report next to the result.
	Report bool `json:"report"`
}

// Response is published to the response queue for every request.
type Response struct {
	Status         string         `json:"status"`
	Reference      string         `json:"reference"`
	ReportFilename string         `json:"report_filename"`
	Result         *engine.Result `json:"result,omitempty"`
	Error          string         `json:"errors"`
}

// Worker computes queued requests and publishes their responses.
type Worker struct {
	engine   *engine.Engine
	reporter *sheet.Reporter
	publish  func(body string) error
}

func New(e *engine.Engine, reporter *sheet.Reporter, publish func(body string) error) *Worker {
	return &Worker{engine: e, reporter: reporter, publish: publish}
}

// Start consumes the request queue of cfg until ctx is done, publishing
// responses to its response queue.
func Start(ctx context.Context, cfg config.RabbitMQ, e *engine.Engine, reporter *sheet.Reporter) error {
	res := cfg.Response()
	w := New(e, reporter, func(body string) error { return rabbit.Publish(res, body) })
	req := cfg.Request()
	log.Infof("Starting ... cost request consumer: %v", req)
	return rabbit.Consume(ctx, req, w.Handle)
}

// Handle processes one message and publishes the response.
func (w *Worker) Handle(data string) {
	w.publishResult(w.Process(data))
}

// Process computes one message. Failures are reported in the response.
func (w *Worker) Process(data string) *Response {
	response := &Response{Status: StatusFailed}
	req, err := deserializeRequest(data)
	if err != nil {
		response.Error = fmt.Sprintf("Deserialization of MQ message failed, err:%v", err)
		return response
	}
	response.Reference = req.Shipment.Reference

	result, err := w.engine.Compute(req.Shipment, req.Lines, req.Options)
	if err != nil {
		response.Error = fmt.Sprintf("Compute landed cost failed, err:%v", err)
		return response
	}
	response.Result = result

	if req.Report {
		filename, err := w.reporter.Generate(result, req.Shipment)
		if err != nil {
			response.Error = fmt.Sprintf("Generate cost report failed, err:%v", err)
			return response
		}
		response.ReportFilename = filename
	}
	response.Status = StatusSuccess
	return response
}

// deserializeRequest accepts the request as raw JSON or as a quoted JSON string.
func deserializeRequest(message string) (Request, error) {
	log.Debugf("Deserialize request: %v", message)

	req := Request{}
	if msg, err := strconv.Unquote(message); err == nil {
		message = msg
	}
	if err := json.Unmarshal([]byte(message), &req); err != nil {
		return req, err
	}
	if len(req.Lines) == 0 {
		return req, fmt.Errorf("request %q has no line items", req.Shipment.Reference)
	}
	return req, nil
}

func (w *Worker) publishResult(res *Response) {
	log.WithFields(log.Fields{
		"reference": res.Reference,
		"status":    res.Status,
		"report":    res.ReportFilename,
	}).Info("Cost response")

	marshal, err := json.Marshal(res)
	if err != nil {
		log.Errorf("Marshal response to json failed: %v", err)
		return
	}
	if err := w.publish(string(marshal)); err != nil {
		log.Errorf("Publish cost response %s failed: %v", res.Reference, err)
	}
}
