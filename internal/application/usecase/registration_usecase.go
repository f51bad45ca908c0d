package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Incorpora-api/internal/application/dto"
	"github.com/jhoicas/Incorpora-api/internal/application/ports"
	"github.com/jhoicas/Incorpora-api/internal/domain"
	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
	"github.com/jhoicas/Incorpora-api/internal/domain/repository"
	"github.com/jhoicas/Incorpora-api/pkg/logger"
)

// expiryTermYears vigencia inicial de la incorporación (renovación de secretaría).
const expiryTermYears = 1

// RegistrationUseCase aplica las reglas del pipeline de incorporación:
// alta, avance de pasos con compuertas de aprobación y decisiones administrativas.
// Las notificaciones por correo son best-effort: un fallo de envío se loggea
// pero nunca revierte la mutación ya persistida.
type RegistrationUseCase struct {
	repo   repository.RegistrationRepository
	mailer ports.Mailer
	log    *logger.Logger
}

// NewRegistrationUseCase construye el caso de uso.
func NewRegistrationUseCase(repo repository.RegistrationRepository, mailer ports.Mailer, log *logger.Logger) *RegistrationUseCase {
	return &RegistrationUseCase{repo: repo, mailer: mailer, log: log}
}

// Create da de alta una solicitud en el paso contact-details con estado
// payment-processing. El ID se genera aquí, no en el cliente.
func (uc *RegistrationUseCase) Create(ctx context.Context, userID, userEmail string, in dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error) {
	now := time.Now()
	reg := &entity.Registration{
		ID:                    uuid.New().String(),
		UserID:                userID,
		UserEmail:             userEmail,
		CompanyName:           in.CompanyName,
		Status:                entity.StatusPaymentProcessing,
		CurrentStep:           entity.StepContactDetails,
		SelectedPackage:       in.SelectedPackage,
		Province:              in.Province,
		District:              in.District,
		DivisionalSecretariat: in.DivisionalSecretariat,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.repo.Create(ctx, reg); err != nil {
		return nil, err
	}
	return toRegistrationResponse(reg), nil
}

// GetByID obtiene un registro. Un customer solo puede ver los propios.
func (uc *RegistrationUseCase) GetByID(ctx context.Context, id, userID, role string) (*dto.RegistrationResponse, error) {
	reg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNotFound
	}
	if role != entity.RoleAdmin && reg.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return toRegistrationResponse(reg), nil
}

// List devuelve registros ordenados por última modificación (solo admin).
func (uc *RegistrationUseCase) List(ctx context.Context, limit, offset int) (*dto.RegistrationListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RegistrationResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRegistrationResponse(r))
	}
	return &dto.RegistrationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListOwn devuelve los registros del usuario autenticado.
func (uc *RegistrationUseCase) ListOwn(ctx context.Context, userID string) (*dto.RegistrationListResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RegistrationResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRegistrationResponse(r))
	}
	return &dto.RegistrationListResponse{Items: items}, nil
}

// UpdateDetails actualiza datos de empresa, plan y ubicación (solo el dueño,
// mientras el registro no esté completado).
func (uc *RegistrationUseCase) UpdateDetails(ctx context.Context, id, userID string, in dto.UpdateDetailsRequest) (*dto.RegistrationResponse, error) {
	reg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNotFound
	}
	if reg.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if reg.Status == entity.StatusCompleted {
		return nil, domain.ErrConflict
	}
	reg.CompanyName = in.CompanyName
	reg.SelectedPackage = in.SelectedPackage
	reg.Province = in.Province
	reg.District = in.District
	reg.DivisionalSecretariat = in.DivisionalSecretariat
	reg.UpdatedAt = time.Now()
	if err := uc.repo.UpdateDetails(ctx, reg); err != nil {
		return nil, err
	}
	return toRegistrationResponse(reg), nil
}

// AdvanceStep avanza el asistente al paso indicado, aplicando las compuertas:
//
//	company-details  requiere pago de anticipo aprobado
//	documentation    requiere datos de empresa presentes
//	incorporate      requiere documentación aprobada
//
// Al llegar a incorporate el estado pasa a completed y se fija la fecha de
// vencimiento a un año (renovación de secretaría), con notificación al cliente.
func (uc *RegistrationUseCase) AdvanceStep(ctx context.Context, id, userID, role string, in dto.AdvanceStepRequest) (*dto.RegistrationResponse, error) {
	reg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNotFound
	}
	if role != entity.RoleAdmin && reg.UserID != userID {
		return nil, domain.ErrForbidden
	}

	status := reg.Status
	switch in.Step {
	case entity.StepContactDetails:
		// retroceder al inicio siempre es válido
	case entity.StepCompanyDetails:
		if !reg.PaymentApproved {
			return nil, domain.ErrStepNotAllowed
		}
	case entity.StepDocumentation:
		if reg.CompanyName == "" {
			return nil, domain.ErrStepNotAllowed
		}
	case entity.StepIncorporate:
		if !reg.DocumentsApproved {
			return nil, domain.ErrStepNotAllowed
		}
		status = entity.StatusCompleted
	default:
		return nil, domain.ErrInvalidInput
	}

	if err := uc.repo.UpdateStep(ctx, id, in.Step, status); err != nil {
		return nil, err
	}
	reg.CurrentStep = in.Step
	reg.Status = status
	reg.UpdatedAt = time.Now()

	if in.Step == entity.StepIncorporate {
		expire := time.Now().AddDate(expiryTermYears, 0, 0)
		if err := uc.repo.SetExpiry(ctx, id, expire, false); err != nil {
			return nil, err
		}
		reg.ExpireDate = &expire
		uc.notify(ctx, reg, "Incorporation completed")
	}

	return toRegistrationResponse(reg), nil
}

// DecidePayment aprueba o rechaza el pago de anticipo (solo admin).
// Aprobación: payment_approved=true, status documents-pending, recibo approved.
// Rechazo: status payment-rejected, recibo rejected. En ambos casos se notifica.
func (uc *RegistrationUseCase) DecidePayment(ctx context.Context, id string, in dto.ApprovalRequest) (*dto.RegistrationResponse, error) {
	reg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNotFound
	}

	status := entity.StatusPaymentRejected
	receiptStatus := entity.ReceiptStatusRejected
	label := "Payment rejected"
	if in.Approved {
		status = entity.StatusDocumentsPending
		receiptStatus = entity.ReceiptStatusApproved
		label = "Payment approved"
	}

	if err := uc.repo.SetPaymentApproval(ctx, id, in.Approved, status); err != nil {
		return nil, err
	}
	if reg.PaymentReceipt != nil {
		reg.PaymentReceipt.Status = receiptStatus
		if err := uc.repo.AttachReceipt(ctx, id, entity.FileKindPaymentReceipt, reg.PaymentReceipt); err != nil {
			return nil, err
		}
	}
	reg.PaymentApproved = in.Approved
	reg.Status = status
	reg.UpdatedAt = time.Now()

	uc.notify(ctx, reg, label)
	return toRegistrationResponse(reg), nil
}

// DecideBalancePayment aprueba o rechaza el recibo del saldo (solo admin).
func (uc *RegistrationUseCase) DecideBalancePayment(ctx context.Context, id string, in dto.ApprovalRequest) (*dto.RegistrationResponse, error) {
	reg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNotFound
	}
	if reg.BalancePaymentReceipt == nil {
		return nil, domain.ErrConflict // no hay recibo de saldo que decidir
	}

	receiptStatus := entity.ReceiptStatusRejected
	label := "Balance payment rejected"
	if in.Approved {
		receiptStatus = entity.ReceiptStatusApproved
		label = "Balance payment approved"
	}
	if err := uc.repo.SetBalanceReceiptStatus(ctx, id, receiptStatus); err != nil {
		return nil, err
	}
	reg.BalancePaymentReceipt.Status = receiptStatus
	reg.UpdatedAt = time.Now()

	uc.notify(ctx, reg, label)
	return toRegistrationResponse(reg), nil
}

// DecideDocuments aprueba o desaprueba la documentación legal (solo admin).
func (uc *RegistrationUseCase) DecideDocuments(ctx context.Context, id string, in dto.ApprovalRequest) (*dto.RegistrationResponse, error) {
	reg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.SetDocumentsApproved(ctx, id, in.Approved); err != nil {
		return nil, err
	}
	reg.DocumentsApproved = in.Approved
	reg.UpdatedAt = time.Now()

	if in.Approved {
		uc.notify(ctx, reg, "Documents approved")
	}
	return toRegistrationResponse(reg), nil
}

// SetExpiry fija o extiende la fecha de vencimiento (solo admin). Si la nueva
// fecha es futura, el flag is_expired se limpia para reconciliar la
// inconsistencia flag-vs-fecha que dejaban las ediciones manuales.
func (uc *RegistrationUseCase) SetExpiry(ctx context.Context, id string, in dto.SetExpiryRequest) (*dto.RegistrationResponse, error) {
	expire, err := time.Parse("2006-01-02", in.ExpireDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	reg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		return nil, domain.ErrNotFound
	}

	today := time.Now()
	isExpired := expire.Before(time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()))
	if err := uc.repo.SetExpiry(ctx, id, expire, isExpired); err != nil {
		return nil, err
	}
	reg.ExpireDate = &expire
	reg.IsExpired = isExpired
	reg.UpdatedAt = time.Now()
	return toRegistrationResponse(reg), nil
}

// notify envía el correo de cambio de estado. Best-effort: el error se loggea
// con el id del registro y no se propaga.
func (uc *RegistrationUseCase) notify(ctx context.Context, reg *entity.Registration, label string) {
	if uc.mailer == nil || reg.UserEmail == "" {
		return
	}
	err := uc.mailer.SendStatusUpdate(ctx, ports.StatusNotice{
		To:          reg.UserEmail,
		Name:        reg.UserEmail,
		CompanyName: reg.CompanyName,
		NewStatus:   label,
	})
	if err != nil {
		uc.log.Warn().Err(err).
			Str("registration_id", reg.ID).
			Str("status", label).
			Msg("fallo al enviar notificación de estado")
	}
}

func toRegistrationResponse(r *entity.Registration) *dto.RegistrationResponse {
	if r == nil {
		return nil
	}
	return &dto.RegistrationResponse{
		ID:                    r.ID,
		UserID:                r.UserID,
		CompanyName:           r.CompanyName,
		Status:                r.Status,
		CurrentStep:           r.CurrentStep,
		DocumentsApproved:     r.DocumentsApproved,
		PaymentApproved:       r.PaymentApproved,
		PaymentReceipt:        toReceiptDTO(r.PaymentReceipt),
		BalancePaymentReceipt: toReceiptDTO(r.BalancePaymentReceipt),
		SelectedPackage:       r.SelectedPackage,
		Province:              r.Province,
		District:              r.District,
		DivisionalSecretariat: r.DivisionalSecretariat,
		ExpireDate:            r.ExpireDate,
		IsExpired:             r.IsExpired,
		CreatedAt:             r.CreatedAt,
		UpdatedAt:             r.UpdatedAt,
	}
}

func toReceiptDTO(r *entity.Receipt) *dto.ReceiptDTO {
	if r == nil {
		return nil
	}
	return &dto.ReceiptDTO{
		FileID:     r.FileID,
		FileName:   r.FileName,
		Status:     r.Status,
		UploadedAt: r.UploadedAt,
	}
}
