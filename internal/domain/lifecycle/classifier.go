// Package lifecycle contiene las reglas puras del ciclo de vida de un registro
// de incorporación: clasificación por paso/estado, cálculo de ingresos,
// histogramas para el dashboard y evaluación de vencimiento.
//
// Ninguna función de este paquete hace I/O; todas operan sobre colecciones ya
// materializadas en memoria. Es el núcleo reutilizable que comparten el
// agregador de overview y el barrido de vencimientos.
package lifecycle

import "github.com/jhoicas/Incorpora-api/internal/domain/entity"

// IsCompleted informa si el registro se considera finalizado. Status y
// CurrentStep pueden estar desincronizados; cualquiera de las tres señales
// basta como evidencia de finalización.
func IsCompleted(r *entity.Registration) bool {
	return r.Status == entity.StatusCompleted ||
		r.DocumentsApproved ||
		r.CurrentStep == entity.StepIncorporate
}

// IsPending es el complemento lógico exacto de IsCompleted: un registro nunca
// cuenta en ambas categorías.
func IsPending(r *entity.Registration) bool {
	return !IsCompleted(r)
}

// IsPaymentProcessing informa si el registro está en verificación de pago.
func IsPaymentProcessing(r *entity.Registration) bool {
	return r.Status == entity.StatusPaymentProcessing ||
		r.CurrentStep == entity.StepContactDetails
}

// IsPaymentApproved informa si el anticipo fue aprobado, independiente del paso.
func IsPaymentApproved(r *entity.Registration) bool {
	return r.PaymentApproved
}

// IsPaymentRejected informa si el pago fue rechazado.
func IsPaymentRejected(r *entity.Registration) bool {
	return r.Status == entity.StatusPaymentRejected
}

// StepCounts acumula registros por paso exacto del asistente.
// Las categorías de pago pueden solaparse con estos contadores: el etiquetado
// del dashboard es multidimensional, no una partición estricta.
type StepCounts struct {
	ContactDetails int
	CompanyDetails int
	Documentation  int
	Incorporate    int
}

// CountSteps cuenta registros por igualdad exacta de CurrentStep contra los
// cuatro pasos canónicos. Pasos desconocidos no suman en ningún contador.
func CountSteps(regs []*entity.Registration) StepCounts {
	var c StepCounts
	for _, r := range regs {
		switch r.CurrentStep {
		case entity.StepContactDetails:
			c.ContactDetails++
		case entity.StepCompanyDetails:
			c.CompanyDetails++
		case entity.StepDocumentation:
			c.Documentation++
		case entity.StepIncorporate:
			c.Incorporate++
		}
	}
	return c
}
