package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// ReportQuery filtros de consulta comunes a reportes y exportaciones.
// from/to en formato YYYY-MM-DD, ambos inclusivos.
type ReportQuery struct {
	From        string `query:"from"`
	To          string `query:"to"`
	Description string `query:"description"`
	Category    string `query:"category"`
	GSM         string `query:"gsm"`
	Item        string `query:"item"`
}
