package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"sysafari.com/customs/costsim/engine"
)

// ComputeRequest is one shipment to cost.
type ComputeRequest struct {
	Shipment engine.ShipmentContext `json:"shipment"`
	Lines    []engine.LineItem      `json:"lines"`
	Options  engine.Options         `json:"options"`
}

// ReportResponse carries the computed result and the report to download.
type ReportResponse struct {
	Filename string         `json:"filename"`
	Result   *engine.Result `json:"result"`
}

func (h *Handler) compute(c echo.Context) (*ComputeRequest, *engine.Result, error) {
	req := &ComputeRequest{}
	if err := c.Bind(req); err != nil {
		return nil, nil, badRequest("request body is not a valid compute request")
	}
	if len(req.Lines) == 0 {
		return nil, nil, badRequest("at least one line item is required")
	}
	res, err := h.engine.Compute(req.Shipment, req.Lines, req.Options)
	if err != nil {
		return nil, nil, err
	}
	return req, res, nil
}

// ComputeCost
// @Summary      Compute a landed-cost breakdown
// @Description  runs the cost pipeline over a shipment and its line items
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        request  body      ComputeRequest  true  "Shipment, lines and options"
// @Success      200      {object}  engine.Result
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /costs [post]
func (h *Handler) ComputeCost(c echo.Context) error {
	_, res, err := h.compute(c)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// ComputeCostReport
// @Summary      Compute a breakdown and write its xlsx report
// @Description  same as /costs, plus a report file downloadable from /reports/{filename}
// @Tags         costs
// @Accept       json
// @Produce      json
// @Param        request  body      ComputeRequest  true  "Shipment, lines and options"
// @Success      200      {object}  ReportResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /costs/report [post]
func (h *Handler) ComputeCostReport(c echo.Context) error {
	req, res, err := h.compute(c)
	if err != nil {
		return fail(c, err)
	}
	filename, err := h.reporter.Generate(res, req.Shipment)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, ReportResponse{Filename: filename, Result: res})
}
