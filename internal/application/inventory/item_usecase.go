package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Textil-api/internal/application/dto"
	"github.com/jhoicas/Textil-api/internal/domain"
	"github.com/jhoicas/Textil-api/internal/domain/entity"
	"github.com/jhoicas/Textil-api/internal/domain/repository"
)

// ItemUseCase CRUD de artículos. El stock actual solo se fija al crear; después
// únicamente lo mueve el motor del ledger (RegisterTransactionUseCase).
type ItemUseCase struct {
	repo     repository.ItemRepository
	notifier SnapshotNotifier
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, notifier SnapshotNotifier) *ItemUseCase {
	return &ItemUseCase{repo: repo, notifier: notifier}
}

// Create valida y crea un artículo. SKU vacío se autogenera; en ambos casos se
// verifica unicidad contra los artículos del usuario (el generador es débil).
func (uc *ItemUseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	if sku == "" {
		sku = entity.GenerateSKU(in.Category, in.Name)
	}
	now := time.Now()
	item := &entity.InventoryItem{
		ID:           uuid.New().String(),
		UserID:       userID,
		SKU:          sku,
		Name:         strings.TrimSpace(in.Name),
		Category:     in.Category,
		Unit:         strings.TrimSpace(in.Unit),
		CurrentStock: in.CurrentStock,
		MinStock:     in.MinStock,
		MaxStock:     in.MaxStock,
		UnitPrice:    in.UnitPrice,
		Supplier:     in.Supplier,
		Location:     in.Location,
		BatchNumber:  in.BatchNumber,
		ExpiryDate:   in.ExpiryDate,
		Notes:        in.Notes,
		CreatedAt:    now,
		LastUpdated:  now,
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	if existing, err := uc.repo.GetByUserAndSKU(userID, item.SKU); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.NewValidationError("sku", "el SKU ya existe: "+item.SKU)
	}
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	if uc.notifier != nil {
		uc.notifier.Notify(ctx, userID)
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo verificando la partición del usuario.
func (uc *ItemUseCase) GetByID(userID, id string) (*dto.ItemResponse, error) {
	item, err := uc.ownedItem(userID, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// Update edita los campos del artículo. Nunca toca CurrentStock (eso es del
// ledger), pero sí refresca LastUpdated como cualquier otra mutación.
func (uc *ItemUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.ownedItem(userID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.SKU != nil {
		item.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Unit != nil {
		item.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.MinStock != nil {
		item.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		item.MaxStock = *in.MaxStock
	}
	if in.UnitPrice != nil {
		item.UnitPrice = *in.UnitPrice
	}
	if in.Supplier != nil {
		item.Supplier = *in.Supplier
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.BatchNumber != nil {
		item.BatchNumber = *in.BatchNumber
	}
	if in.ExpiryDate != nil {
		item.ExpiryDate = in.ExpiryDate
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	if err := validateItem(item); err != nil {
		return nil, err
	}
	if in.SKU != nil {
		existing, err := uc.repo.GetByUserAndSKU(userID, item.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != item.ID {
			return nil, domain.NewValidationError("sku", "el SKU ya existe: "+item.SKU)
		}
	}
	item.LastUpdated = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	if uc.notifier != nil {
		uc.notifier.Notify(ctx, userID)
	}
	return toItemResponse(item), nil
}

// List lista artículos del usuario con paginación.
func (uc *ItemUseCase) List(userID string, limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.repo.ListByUser(userID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		items = append(items, *toItemResponse(it))
	}
	return &dto.ItemListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete borra el artículo. Las transacciones históricas que lo referencian se
// conservan: el ledger es historia append-only de un artículo que puede ya no existir.
func (uc *ItemUseCase) Delete(ctx context.Context, userID, id string) error {
	if _, err := uc.ownedItem(userID, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(id); err != nil {
		return err
	}
	if uc.notifier != nil {
		uc.notifier.Notify(ctx, userID)
	}
	return nil
}

func (uc *ItemUseCase) ownedItem(userID, id string) (*entity.InventoryItem, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrItemNotFound
	}
	if item.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return item, nil
}

// validateItem reglas de creación/edición: campos obligatorios, cantidades no
// negativas y max >= min cuando hay tope. Falla con el primer campo ofensor,
// sin guardado parcial.
func validateItem(item *entity.InventoryItem) error {
	if item.Name == "" {
		return domain.NewValidationError("name", "el nombre es obligatorio")
	}
	if item.SKU == "" {
		return domain.NewValidationError("sku", "el SKU es obligatorio")
	}
	if !entity.IsValidCategory(item.Category) {
		return domain.NewValidationError("category", "categoría desconocida: "+item.Category)
	}
	if item.Unit == "" {
		return domain.NewValidationError("unit", "la unidad es obligatoria")
	}
	if item.CurrentStock.LessThan(decimal.Zero) {
		return domain.NewValidationError("current_stock", "el stock no puede ser negativo")
	}
	if item.MinStock.LessThan(decimal.Zero) {
		return domain.NewValidationError("min_stock", "el mínimo no puede ser negativo")
	}
	if item.MaxStock.LessThan(decimal.Zero) {
		return domain.NewValidationError("max_stock", "el máximo no puede ser negativo")
	}
	if item.UnitPrice.LessThan(decimal.Zero) {
		return domain.NewValidationError("unit_price", "el precio no puede ser negativo")
	}
	// MaxStock en cero significa sin tope; solo entonces se omite max >= min.
	if item.MaxStock.GreaterThan(decimal.Zero) && item.MaxStock.LessThan(item.MinStock) {
		return domain.NewValidationError("max_stock", "el máximo debe ser mayor o igual que el mínimo")
	}
	return nil
}

func toItemResponse(item *entity.InventoryItem) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:           item.ID,
		SKU:          item.SKU,
		Name:         item.Name,
		Category:     item.Category,
		Unit:         item.Unit,
		CurrentStock: item.CurrentStock,
		MinStock:     item.MinStock,
		MaxStock:     item.MaxStock,
		UnitPrice:    item.UnitPrice,
		TotalValue:   item.TotalValue(),
		Status:       string(item.Status()),
		Supplier:     item.Supplier,
		Location:     item.Location,
		BatchNumber:  item.BatchNumber,
		ExpiryDate:   item.ExpiryDate,
		Notes:        item.Notes,
		CreatedAt:    item.CreatedAt,
		LastUpdated:  item.LastUpdated,
	}
}
