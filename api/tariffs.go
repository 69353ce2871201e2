package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"sysafari.com/customs/costsim/engine"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type TariffSearchResponse struct {
	Query   string               `json:"query"`
	Results []engine.TariffEntry `json:"results"`
}

// SearchTariffs
// @Summary      Search the tariff table
// @Description  matches a code prefix or a description fragment, for manual code correction
// @Tags         tariffs
// @Produce      json
// @Param        q      query     string  true   "Code prefix or description fragment"
// @Param        limit  query     int     false  "Maximum results (default 20, max 100)"
// @Success      200    {object}  TariffSearchResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /tariffs [get]
func (h *Handler) SearchTariffs(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return fail(c, badRequest("query parameter q is required"))
	}
	limit := defaultSearchLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return fail(c, badRequest("limit must be a positive integer"))
		}
		limit = n
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	results := h.engine.Resolver().Search(q, limit)
	if results == nil {
		results = []engine.TariffEntry{}
	}
	return c.JSON(http.StatusOK, TariffSearchResponse{Query: q, Results: results})
}
