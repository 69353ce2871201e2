package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"sysafari.com/customs/costsim/engine"
	"sysafari.com/customs/costsim/sheet"
)

// ImportResponse lists the lines read from a workbook with their tariff
// snapshots, the rows rejected and the codes absent from the tariff table.
type ImportResponse struct {
	Sheet      string                 `json:"sheet"`
	Lines      []engine.LineItem      `json:"lines"`
	SourceRows []int                  `json:"source_rows"`
	Errors     []sheet.RowError       `json:"errors,omitempty"`
	Unmatched  []engine.UnmatchedLine `json:"unmatched,omitempty"`
}

// CorrectRequest replaces the code of one line.
type CorrectRequest struct {
	Lines []engine.LineItem `json:"lines"`
	Index int               `json:"index"`
	Code  string            `json:"code"`
}

// LinesResponse carries corrected lines and what remains unmatched.
type LinesResponse struct {
	Lines     []engine.LineItem      `json:"lines"`
	Unmatched []engine.UnmatchedLine `json:"unmatched,omitempty"`
}

// ImportLines
// @Summary      Import line items from an invoice workbook
// @Description  reads the first sheet of an xlsx upload, validates every row and resolves tariff codes
// @Tags         lines
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Invoice workbook (.xlsx)"
// @Success      200   {object}  ImportResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      413   {object}  ErrorResponse
// @Router       /lines/import [post]
func (h *Handler) ImportLines(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return fail(c, badRequest("a workbook must be uploaded in field \"file\""))
	}
	if file.Size > h.maxUpload {
		return fail(c, echo.NewHTTPError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("workbook exceeds %d bytes", h.maxUpload)))
	}
	src, err := file.Open()
	if err != nil {
		return fail(c, err)
	}
	defer src.Close()

	imp, err := sheet.ImportLines(src)
	if err != nil {
		return fail(c, err)
	}
	lines := engine.ResolveTariffs(imp.Lines, h.engine.Tables())
	return c.JSON(http.StatusOK, ImportResponse{
		Sheet:      imp.Sheet,
		Lines:      lines,
		SourceRows: imp.SourceRows,
		Errors:     imp.Errors,
		Unmatched:  engine.Unmatched(lines),
	})
}

// CorrectLine
// @Summary      Correct the tariff code of a line
// @Description  replaces the code and the whole tariff snapshot of lines[index]
// @Tags         lines
// @Accept       json
// @Produce      json
// @Param        request  body      CorrectRequest  true  "Lines, index and replacement code"
// @Success      200      {object}  LinesResponse
// @Failure      400      {object}  ErrorResponse
// @Failure      422      {object}  ErrorResponse
// @Router       /lines/correct [post]
func (h *Handler) CorrectLine(c echo.Context) error {
	req := &CorrectRequest{}
	if err := c.Bind(req); err != nil {
		return fail(c, badRequest("request body is not a valid correction"))
	}
	lines, err := h.engine.Resolver().Correct(engine.ResolveTariffs(req.Lines, h.engine.Tables()), req.Index, req.Code)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, LinesResponse{Lines: lines, Unmatched: engine.Unmatched(lines)})
}
