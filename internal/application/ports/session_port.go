package ports

import "context"

// SessionStore define el puerto de salida para el estado por sesión del panel:
// el borrador de factura y la preferencia de gráfico. Reemplaza el almacenamiento
// del navegador por una caché explícita con vencimiento.
// Cualquier adaptador (Redis, memoria, mock) debe implementar esta interfaz.
type SessionStore interface {
	// Get decodifica el valor guardado en dst. found=false si no existe o venció.
	Get(ctx context.Context, sessionID, key string, dst any) (found bool, err error)
	Set(ctx context.Context, sessionID, key string, value any) error
	Delete(ctx context.Context, sessionID, key string) error
}

// Claves de sesión conocidas.
const (
	SessionKeyDraftBill = "draft_bill"
	SessionKeyChartPref = "chart_pref"
)
