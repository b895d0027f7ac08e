package report

import (
	"context"
	"fmt"

	"github.com/jhoicas/Repuestos-api/internal/application/dto"
	"github.com/jhoicas/Repuestos-api/internal/application/ports"
)

// DefaultChartType gráfico mostrado cuando la sesión no eligió uno.
const DefaultChartType = "bar"

// PreferencesUseCase preferencia de gráfico del panel, guardada por sesión.
type PreferencesUseCase struct {
	store ports.SessionStore
}

// NewPreferencesUseCase construye el caso de uso.
func NewPreferencesUseCase(store ports.SessionStore) *PreferencesUseCase {
	return &PreferencesUseCase{store: store}
}

// Chart preferencia actual o el valor por defecto.
func (uc *PreferencesUseCase) Chart(ctx context.Context, sessionID string) (*dto.ChartPreference, error) {
	var p dto.ChartPreference
	found, err := uc.store.Get(ctx, sessionID, ports.SessionKeyChartPref, &p)
	if err != nil {
		return nil, fmt.Errorf("preferencias: leer: %w", err)
	}
	if !found || p.Type == "" {
		p.Type = DefaultChartType
	}
	return &p, nil
}

// SetChart guarda la preferencia.
func (uc *PreferencesUseCase) SetChart(ctx context.Context, sessionID string, p dto.ChartPreference) (*dto.ChartPreference, error) {
	if err := uc.store.Set(ctx, sessionID, ports.SessionKeyChartPref, p); err != nil {
		return nil, fmt.Errorf("preferencias: guardar: %w", err)
	}
	return &p, nil
}
