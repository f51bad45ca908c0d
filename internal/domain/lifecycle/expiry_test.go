package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
	"github.com/jhoicas/Incorpora-api/internal/domain/lifecycle"
)

var hoy = time.Date(2026, time.September, 1, 9, 30, 0, 0, time.UTC)

func fechaPtr(t time.Time) *time.Time { return &t }

// ──────────────────────────────────────────────────────────────────────────────
// IsExpired: flag almacenado y fecha en vivo son ambos autoritativos
// ──────────────────────────────────────────────────────────────────────────────

func TestIsExpired_PorFlagAlmacenado(t *testing.T) {
	futuro := hoy.AddDate(0, 6, 0)
	r := &entity.Registration{IsExpired: true, ExpireDate: &futuro}
	assert.True(t, lifecycle.IsExpired(r, hoy),
		"el flag almacenado dispara vencimiento aunque la fecha esté en el futuro")
}

func TestIsExpired_PorFechaAnteriorAHoy(t *testing.T) {
	ayer := hoy.AddDate(0, 0, -1)
	r := &entity.Registration{ExpireDate: &ayer}
	assert.True(t, lifecycle.IsExpired(r, hoy))
}

func TestIsExpired_NoVencidoSinFechaNiFlag(t *testing.T) {
	assert.False(t, lifecycle.IsExpired(&entity.Registration{}, hoy))
}

// La comparación es por día calendario: vencer "hoy" todavía no es vencido.
func TestIsExpired_MismoDiaNoEsVencido(t *testing.T) {
	mismaFecha := time.Date(2026, time.September, 1, 23, 59, 0, 0, time.UTC)
	r := &entity.Registration{ExpireDate: &mismaFecha}
	assert.False(t, lifecycle.IsExpired(r, hoy))
}

// ──────────────────────────────────────────────────────────────────────────────
// NotificationOwed: a lo sumo una notificación por registro por día
// ──────────────────────────────────────────────────────────────────────────────

// Escenario del contrato: vencido ayer, sin notificar, email válido → se debe;
// tras simular el envío (persistiendo SentAt = ahora) ya no se debe hoy.
func TestNotificationOwed_DedupPorDiaCalendario(t *testing.T) {
	ayer := hoy.AddDate(0, 0, -1)
	r := &entity.Registration{
		UserEmail:  "cliente@example.com",
		ExpireDate: &ayer,
		IsExpired:  false,
	}

	assert.True(t, lifecycle.NotificationOwed(r, hoy), "primera evaluación del día debe deber notificación")

	// Simular envío exitoso: el caller persiste SentAt = ahora e IsExpired = true
	r.ExpiryNotificationSentAt = fechaPtr(hoy)
	r.IsExpired = true

	assert.False(t, lifecycle.NotificationOwed(r, hoy), "reevaluar el mismo día debe ser no-op")

	manana := hoy.AddDate(0, 0, 1)
	assert.True(t, lifecycle.NotificationOwed(r, manana), "al día siguiente vuelve a deberse")
}

func TestNotificationOwed_SinEmailNoSeDebe(t *testing.T) {
	ayer := hoy.AddDate(0, 0, -1)
	r := &entity.Registration{ExpireDate: &ayer}
	assert.False(t, lifecycle.NotificationOwed(r, hoy))
}

func TestNotificationOwed_NoVencidoNoSeDebe(t *testing.T) {
	futuro := hoy.AddDate(1, 0, 0)
	r := &entity.Registration{UserEmail: "cliente@example.com", ExpireDate: &futuro}
	assert.False(t, lifecycle.NotificationOwed(r, hoy))
}

func TestNotificationOwed_NotificadoAyerSeDebeHoy(t *testing.T) {
	ayer := hoy.AddDate(0, 0, -1)
	r := &entity.Registration{
		UserEmail:                "cliente@example.com",
		IsExpired:                true,
		ExpiryNotificationSentAt: fechaPtr(ayer),
	}
	assert.True(t, lifecycle.NotificationOwed(r, hoy))
}
