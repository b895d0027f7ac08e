package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/report"
)

// ReportHandler panel de utilidades, caché del libro y preferencias de la sesión.
type ReportHandler struct {
	uc    *report.ProfitReportUseCase
	prefs *report.PreferencesUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ProfitReportUseCase, prefs *report.PreferencesUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, prefs: prefs}
}

// Dashboard godoc
// @Summary      Panel de utilidades
// @Description  Concilia facturas, libro en caché y stock; filtra y agrega por mes.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from         query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        to           query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Param        description  query  string  false  "Descripción exacta o All"
// @Param        category     query  string  false  "Categoría o All"
// @Param        gsm          query  string  false  "Código GSM"
// @Success      200  {object}  dto.ProfitDashboardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/profit [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	crit, err := reportCriteria(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Dashboard(c.UserContext(), crit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar vista filtrada
// @Tags         reports
// @Security     Bearer
// @Produce      octet-stream
// @Param        kind    query  string  false  "ledger (default), expenses o monthly"
// @Param        format  query  string  true   "csv, xlsx, pdf o print"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/profit/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	crit, err := reportCriteria(c)
	if err != nil {
		return respondError(c, err)
	}
	f, err := h.uc.Export(c.UserContext(), c.Query("kind"), c.Query("format"), crit)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, f)
}

// LedgerRows godoc
// @Summary      Filas del libro en caché
// @Tags         profit-ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LedgerRowResponse
// @Router       /api/profit-ledger [get]
func (h *ReportHandler) LedgerRows(c *fiber.Ctx) error {
	out, err := h.uc.LedgerRows(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BulkInsert godoc
// @Summary      Insertar filas en el libro
// @Description  Las filas ya presentes (misma clave de deduplicación) se ignoran.
// @Tags         profit-ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LedgerBulkInsertRequest  true  "Filas"
// @Success      200   {object}  dto.LedgerSyncResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/profit-ledger/bulk-insert [post]
func (h *ReportHandler) BulkInsert(c *fiber.Ctx) error {
	var in dto.LedgerBulkInsertRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.BulkInsert(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sync godoc
// @Summary      Sincronizar libro
// @Description  Guarda en la caché las filas conciliadas que aún no estén.
// @Tags         profit-ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LedgerSyncResponse
// @Router       /api/profit-ledger/sync [post]
func (h *ReportHandler) Sync(c *fiber.Ctx) error {
	out, err := h.uc.Sync(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChartPreference godoc
// @Summary      Tipo de gráfico de la sesión
// @Tags         preferences
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ChartPreference
// @Router       /api/preferences/chart [get]
func (h *ReportHandler) ChartPreference(c *fiber.Ctx) error {
	out, err := h.prefs.Chart(c.UserContext(), GetSessionID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SetChartPreference godoc
// @Summary      Cambiar tipo de gráfico
// @Tags         preferences
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChartPreference  true  "bar, line o area"
// @Success      200   {object}  dto.ChartPreference
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/preferences/chart [put]
func (h *ReportHandler) SetChartPreference(c *fiber.Ctx) error {
	var in dto.ChartPreference
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.prefs.SetChart(c.UserContext(), GetSessionID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
