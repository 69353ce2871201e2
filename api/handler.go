package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"sysafari.com/customs/costsim/engine"
	"sysafari.com/customs/costsim/sheet"
)

// DefaultMaxUpload bounds imported invoice workbooks.
const DefaultMaxUpload int64 = 10 << 20

// Handler serves the cost computation endpoints over one engine.
type Handler struct {
	engine    *engine.Engine
	reporter  *sheet.Reporter
	maxUpload int64
}

func New(e *engine.Engine, reporter *sheet.Reporter) *Handler {
	return &Handler{engine: e, reporter: reporter, maxUpload: DefaultMaxUpload}
}

// Register mounts the API and the swagger UI on e.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	v1.GET("/health", h.Health)
	v1.POST("/costs", h.ComputeCost)
	v1.POST("/costs/report", h.ComputeCostReport)
	// exp: http://localhost:{port}/v1/reports/COST_SIM-01_20240517093000.xlsx?download=1
	v1.GET("/reports/:filename", h.DownloadReport)
	v1.POST("/lines/import", h.ImportLines)
	v1.POST("/lines/correct", h.CorrectLine)
	v1.GET("/tariffs", h.SearchTariffs)
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports the loaded reference data.
type HealthResponse struct {
	Status     string `json:"status"`
	Tariffs    int    `json:"tariffs"`
	Exemptions int    `json:"exemptions"`
	PortFees   int    `json:"port_fees"`
}

// Health
// @Summary      Service health
// @Description  reports the size of the loaded rate tables
// @Tags         health
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *Handler) Health(c echo.Context) error {
	resp := HealthResponse{Status: "ok"}
	if t, ok := h.engine.Tables().(*engine.Tables); ok {
		resp.Tariffs, resp.Exemptions, resp.PortFees = t.Len()
	}
	return c.JSON(http.StatusOK, resp)
}

// fail maps err to a status code and writes it as an ErrorResponse.
func fail(c echo.Context, err error) error {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		log.Errorf("%s %s failed: %v", c.Request().Method, c.Path(), err)
	}
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg = fmt.Sprint(he.Message)
	}
	return c.JSON(status, ErrorResponse{Error: msg})
}

func statusOf(err error) int {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code
	case errors.Is(err, engine.ErrInvalidLine),
		errors.Is(err, engine.ErrInvalidShipment),
		errors.Is(err, sheet.ErrMissingColumns),
		errors.Is(err, sheet.ErrEmptyWorkbook),
		errors.Is(err, sheet.ErrInvalidReportName):
		return http.StatusBadRequest
	case errors.Is(err, sheet.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrUnknownCode):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(msg string) error {
	return echo.NewHTTPError(http.StatusBadRequest, msg)
}
