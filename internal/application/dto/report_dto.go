package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerRowResponse fila del libro de utilidades (utilidad derivada, nunca almacenada).
type LedgerRowResponse struct {
	ID             string          `json:"id"`
	Date           *time.Time      `json:"date"`
	GSM            string          `json:"gsm"`
	Description    string          `json:"description"`
	Qty            int             `json:"qty"`
	Price          decimal.Decimal `json:"price"`
	Cost           decimal.Decimal `json:"cost"`
	ProfitPerPiece decimal.Decimal `json:"profit_per_piece"`
	Profit         decimal.Decimal `json:"profit"`
}

// MonthlyResponse bucket mensual.
type MonthlyResponse struct {
	Month   string          `json:"month"`
	Label   string          `json:"label"`
	Profit  decimal.Decimal `json:"profit"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// SummaryResponse totales del periodo filtrado.
type SummaryResponse struct {
	TotalProfit  decimal.Decimal `json:"total_profit"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetTotal     decimal.Decimal `json:"net_total"`
	TotalSales   decimal.Decimal `json:"total_sales"`
}

// FilterOptions valores disponibles para los selectores del panel.
type FilterOptions struct {
	Descriptions []string `json:"descriptions"`
	Categories   []string `json:"categories"`
	GSMCodes     []string `json:"gsm_codes"`
}

// ProfitDashboardResponse salida del panel de utilidades.
type ProfitDashboardResponse struct {
	Summary  SummaryResponse     `json:"summary"`
	Monthly  []MonthlyResponse   `json:"monthly"`
	Ledger   []LedgerRowResponse `json:"ledger"`
	Expenses []ExpenseResponse   `json:"expenses"`
	Filters  FilterOptions       `json:"filters"`
	Warnings []string            `json:"warnings,omitempty"`
}

// LedgerBulkInsertRequest filas a guardar en la caché del libro.
type LedgerBulkInsertRequest struct {
	Rows []LedgerRowInput `json:"rows" validate:"required,min=1,dive"`
}

// LedgerRowInput fila recibida para la caché del libro.
type LedgerRowInput struct {
	Date        *time.Time      `json:"date"`
	GSM         string          `json:"gsm" validate:"required"`
	Description string          `json:"description"`
	Qty         int             `json:"qty" validate:"min=0"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
}

// LedgerSyncResponse resultado de una sincronización o inserción masiva.
type LedgerSyncResponse struct {
	Candidates int   `json:"candidates"`
	Inserted   int64 `json:"inserted"`
}

// ChartPreference tipo de gráfico elegido en el panel.
type ChartPreference struct {
	Type string `json:"type" validate:"required,oneof=bar line area"`
}

// ExportFile documento generado por una exportación.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}
