package lifecycle

import (
	"time"

	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
)

// IsExpired decide si un registro está vencido. El flag almacenado y la
// comparación de fecha en vivo son ambos autoritativos: cualquiera de los dos
// dispara el vencimiento (compatibilidad con filas corregidas a mano).
func IsExpired(r *entity.Registration, today time.Time) bool {
	if r.IsExpired {
		return true
	}
	if r.ExpireDate == nil {
		return false
	}
	return dateOnly(*r.ExpireDate).Before(dateOnly(today))
}

// NotificationOwed decide si todavía se debe la notificación de vencimiento:
// a lo sumo una por registro por día calendario. Reejecutar el barrido tras un
// envío exitoso es no-op hasta el día siguiente.
func NotificationOwed(r *entity.Registration, today time.Time) bool {
	if !IsExpired(r, today) || r.UserEmail == "" {
		return false
	}
	if r.ExpiryNotificationSentAt == nil {
		return true
	}
	return dateOnly(*r.ExpiryNotificationSentAt).Before(dateOnly(today))
}

// dateOnly trunca a día calendario conservando la zona horaria.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
