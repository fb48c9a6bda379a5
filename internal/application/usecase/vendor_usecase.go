package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/crm-ledger/internal/application/dto"
	"github.com/jhoicas/crm-ledger/internal/domain"
	"github.com/jhoicas/crm-ledger/internal/domain/entity"
	"github.com/jhoicas/crm-ledger/internal/domain/repository"
)

// VendorUseCase casos de uso CRUD para proveedores.
type VendorUseCase struct {
	repo repository.VendorRepository
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo}
}

// Create crea un proveedor del owner.
func (uc *VendorUseCase) Create(ctx context.Context, ownerID string, in dto.SavePartyRequest) (*dto.PartyResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	vendor := &entity.Vendor{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// GetByID obtiene un proveedor del owner.
func (uc *VendorUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.PartyResponse, error) {
	vendor, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	return toVendorResponse(vendor), nil
}

// List lista los proveedores del owner.
func (uc *VendorUseCase) List(ctx context.Context, ownerID string, limit, offset int) ([]*dto.PartyResponse, error) {
	vendors, err := uc.repo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartyResponse, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, toVendorResponse(v))
	}
	return out, nil
}

// Update actualiza los datos del proveedor.
func (uc *VendorUseCase) Update(ctx context.Context, ownerID, id string, in dto.SavePartyRequest) (*dto.PartyResponse, error) {
	vendor, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	vendor.Name = in.Name
	vendor.Email = in.Email
	vendor.Phone = in.Phone
	vendor.Address = in.Address
	vendor.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// Delete elimina el proveedor. Las compras existentes conservan su VendorID.
func (uc *VendorUseCase) Delete(ctx context.Context, ownerID, id string) error {
	vendor, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if vendor == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, ownerID, id)
}

func toVendorResponse(v *entity.Vendor) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:        v.ID,
		Name:      v.Name,
		Email:     v.Email,
		Phone:     v.Phone,
		Address:   v.Address,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
