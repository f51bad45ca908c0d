package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Incorpora-api/internal/application/dto"
	"github.com/jhoicas/Incorpora-api/internal/domain"
	"github.com/jhoicas/Incorpora-api/internal/domain/entity"
	"github.com/jhoicas/Incorpora-api/internal/domain/repository"
)

// PackageUseCase administra el catálogo de planes de incorporación.
type PackageUseCase struct {
	repo repository.PackageRepository
}

// NewPackageUseCase construye el caso de uso.
func NewPackageUseCase(repo repository.PackageRepository) *PackageUseCase {
	return &PackageUseCase{repo: repo}
}

// Create da de alta un plan activo. Los montos no pueden ser negativos.
func (uc *PackageUseCase) Create(ctx context.Context, in dto.CreatePackageRequest) (*dto.PackageResponse, error) {
	if in.Name == "" || in.Price.IsNegative() || in.AdvanceAmount.IsNegative() || in.BalanceAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	pkg := &entity.Package{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Price:         in.Price,
		AdvanceAmount: in.AdvanceAmount,
		BalanceAmount: in.BalanceAmount,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, pkg); err != nil {
		return nil, err
	}
	return toPackageResponse(pkg), nil
}

// GetByID obtiene un plan por ID.
func (uc *PackageUseCase) GetByID(ctx context.Context, id string) (*dto.PackageResponse, error) {
	pkg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrNotFound
	}
	return toPackageResponse(pkg), nil
}

// Update modifica un plan existente.
func (uc *PackageUseCase) Update(ctx context.Context, id string, in dto.UpdatePackageRequest) (*dto.PackageResponse, error) {
	pkg, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, domain.ErrNotFound
	}
	if in.Price.IsNegative() || in.AdvanceAmount.IsNegative() || in.BalanceAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Name != "" {
		pkg.Name = in.Name
	}
	pkg.Price = in.Price
	pkg.AdvanceAmount = in.AdvanceAmount
	pkg.BalanceAmount = in.BalanceAmount
	if in.IsActive != nil {
		pkg.IsActive = *in.IsActive
	}
	pkg.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return toPackageResponse(pkg), nil
}

// ListActive devuelve los planes visibles para clientes.
func (uc *PackageUseCase) ListActive(ctx context.Context) (*dto.PackageListResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PackageResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPackageResponse(p))
	}
	return &dto.PackageListResponse{Items: items}, nil
}

func toPackageResponse(p *entity.Package) *dto.PackageResponse {
	if p == nil {
		return nil
	}
	return &dto.PackageResponse{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		AdvanceAmount: p.AdvanceAmount,
		BalanceAmount: p.BalanceAmount,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
