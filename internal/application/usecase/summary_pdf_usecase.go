package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Incorpora-api/internal/application/ports"
	"github.com/jhoicas/Incorpora-api/internal/domain"
	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
	"github.com/jhoicas/Incorpora-api/internal/domain/lifecycle"
	"github.com/jhoicas/Incorpora-api/internal/domain/repository"
)

// SummaryPDFUseCase genera el resumen PDF de un registro de incorporación.
// Solo se permite para registros ya completados.
type SummaryPDFUseCase struct {
	regRepo   repository.RegistrationRepository
	pkgRepo   repository.PackageRepository
	fileRepo  repository.FileRepository
	generator ports.SummaryPDFGenerator
}

// NewSummaryPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewSummaryPDFUseCase(
	regRepo repository.RegistrationRepository,
	pkgRepo repository.PackageRepository,
	fileRepo repository.FileRepository,
	generator ports.SummaryPDFGenerator,
) *SummaryPDFUseCase {
	return &SummaryPDFUseCase{
		regRepo:   regRepo,
		pkgRepo:   pkgRepo,
		fileRepo:  fileRepo,
		generator: generator,
	}
}

// DownloadSummaryPDF recupera el registro, verifica propiedad y completitud,
// y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el registro no existe.
//   - domain.ErrForbidden        si el registro no pertenece al usuario del token.
//   - domain.ErrConflict         si el registro aún no está completado.
func (uc *SummaryPDFUseCase) DownloadSummaryPDF(
	ctx context.Context,
	id, userID, role string,
) (pdfBytes []byte, filename string, err error) {
	reg, err := uc.regRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener registro: %w", err)
	}
	if reg == nil {
		return nil, "", domain.ErrNotFound
	}
	if role != entity.RoleAdmin && reg.UserID != userID {
		return nil, "", domain.ErrForbidden
	}
	if !lifecycle.IsCompleted(reg) {
		return nil, "", domain.ErrConflict
	}

	// El plan puede faltar (id obsoleto): el PDF se genera igual sin montos.
	var pkg *entity.Package
	if reg.SelectedPackage != "" {
		pkg, err = uc.pkgRepo.GetByID(ctx, reg.SelectedPackage)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener plan: %w", err)
		}
	}

	files, err := uc.fileRepo.ListByRegistration(ctx, reg.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: listar archivos: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateSummaryPDF(ctx, reg, pkg, files)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar: %w", err)
	}

	name := reg.CompanyName
	if name == "" {
		name = reg.ID
	}
	return pdfBytes, fmt.Sprintf("incorporation-%s.pdf", name), nil
}
