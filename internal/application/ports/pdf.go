package ports

import (
	"context"

	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
)

// SummaryPDFGenerator genera el resumen PDF de un registro de incorporación.
type SummaryPDFGenerator interface {
	GenerateSummaryPDF(ctx context.Context, reg *entity.Registration, pkg *entity.Package, files []*entity.StoredFile) ([]byte, error)
}
