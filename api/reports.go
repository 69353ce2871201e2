package api

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"sysafari.com/customs/costsim/utils"
)

// DownloadReport
// Download a cost report
// @Summary      Download a cost report
// @Description  get file by filename
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        filename   path      string  true   "Report filename"
// @Param        download   query     int     false  "Download file"
// @Success      200
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /reports/{filename} [get]
func (h *Handler) DownloadReport(c echo.Context) error {
	if !utils.IsDir(h.reporter.TmpDir) {
		return fail(c, fmt.Errorf("the report root directory: %s does not exist", h.reporter.TmpDir))
	}
	filename := c.Param("filename")
	if filename == "" {
		return fail(c, badRequest("the filename must be provided, but was empty"))
	}
	path, err := h.reporter.Path(filename)
	if err != nil {
		return fail(c, err)
	}
	if c.QueryParam("download") == "1" {
		return c.Attachment(path, filename)
	}
	return c.File(path)
}
