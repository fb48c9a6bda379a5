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

// ItemUseCase casos de uso CRUD para el catálogo de artículos. El stock no se edita
// aquí: se mueve únicamente vía ajustes de inventario.
type ItemUseCase struct {
	repo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo}
}

// Create crea un artículo del owner.
func (uc *ItemUseCase) Create(ctx context.Context, ownerID string, in dto.SaveItemRequest) (*dto.ItemResponse, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	item := &entity.Item{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Name:      in.Name,
		Unit:      in.Unit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo del owner.
func (uc *ItemUseCase) GetByID(ctx context.Context, ownerID, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// List lista el catálogo del owner.
func (uc *ItemUseCase) List(ctx context.Context, ownerID string, limit, offset int) ([]*dto.ItemResponse, error) {
	items, err := uc.repo.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out, nil
}

// Update actualiza nombre y unidad. Los StockRecords existentes conservan sus copias
// desnormalizadas hasta el próximo ajuste (staleness aceptada).
func (uc *ItemUseCase) Update(ctx context.Context, ownerID, id string, in dto.SaveItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	item.Name = in.Name
	item.Unit = in.Unit
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Delete elimina el artículo del catálogo. El StockRecord y el historial de inventario
// se conservan.
func (uc *ItemUseCase) Delete(ctx context.Context, ownerID, id string) error {
	item, err := uc.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, ownerID, id)
}

func toItemResponse(item *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:        item.ID,
		Name:      item.Name,
		Unit:      item.Unit,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
