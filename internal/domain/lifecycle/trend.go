package lifecycle

import (
	"sort"
	"time"

	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
)

// trendMonths meses de la serie de tendencia, incluido el mes actual.
const trendMonths = 12

// TrendPoint un mes de la serie de registros creados.
type TrendPoint struct {
	Label string `json:"label"` // ej: "September 2026"
	Date  string `json:"date"`  // ISO del día 1 del mes, ej: "2026-09-01"
	Count int    `json:"count"`
}

// ActivityItem proyección de un registro para el feed de actividad reciente.
type ActivityItem struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	Status      string    `json:"status"`
	CurrentStep string    `json:"current_step"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MonthlyTrend cuenta registros por mes de creación (fallback UpdatedAt si
// CreatedAt es cero) para los últimos 12 meses calendario, del más antiguo al
// mes actual. Siempre devuelve exactamente 12 entradas.
func MonthlyTrend(regs []*entity.Registration, now time.Time) []TrendPoint {
	type monthKey struct {
		year  int
		month time.Month
	}

	counts := map[monthKey]int{}
	for _, r := range regs {
		t := r.CreatedAt
		if t.IsZero() {
			t = r.UpdatedAt
		}
		counts[monthKey{t.Year(), t.Month()}]++
	}

	points := make([]TrendPoint, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		points = append(points, TrendPoint{
			Label: first.Format("January 2006"),
			Date:  first.Format("2006-01-02"),
			Count: counts[monthKey{first.Year(), first.Month()}],
		})
	}
	return points
}

// RecentActivity ordena los registros por última modificación (UpdatedAt con
// fallback CreatedAt) descendente y proyecta los primeros `limit` al shape de
// display, con defaults cuando faltan nombre, estado o paso.
func RecentActivity(regs []*entity.Registration, limit int) []ActivityItem {
	sorted := make([]*entity.Registration, len(regs))
	copy(sorted, regs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastTouched().After(sorted[j].LastTouched())
	})

	if limit > len(sorted) {
		limit = len(sorted)
	}
	items := make([]ActivityItem, 0, limit)
	for _, r := range sorted[:limit] {
		item := ActivityItem{
			ID:          r.ID,
			CompanyName: r.CompanyName,
			Status:      r.Status,
			CurrentStep: r.CurrentStep,
			UpdatedAt:   r.LastTouched(),
		}
		if item.CompanyName == "" {
			item.CompanyName = "Unnamed Company"
		}
		if item.Status == "" {
			item.Status = entity.StatusPaymentProcessing
		}
		if item.CurrentStep == "" {
			item.CurrentStep = entity.StepContactDetails
		}
		items = append(items, item)
	}
	return items
}
