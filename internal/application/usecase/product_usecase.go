package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Costeo-api/internal/application/dto"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// ProductUseCase casos de uso de productos: catálogo, libros de costos y EOQ.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un nuevo producto con libros vacíos. El nombre es único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	product, err := entity.NewProduct(entity.ProductKind(strings.ToLower(in.Kind)), in.Name, entity.ProductAttrs{
		Price:     in.Price,
		Demand:    in.Demand,
		LeadTime:  in.LeadTime,
		Inventory: in.Inventory,
	})
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product.ID = uuid.New().String()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return ToProductResponse(product), nil
}

// Update actualiza precio, demanda, tiempo de entrega o inventario.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Price != nil {
		if err := product.SetPrice(*in.Price); err != nil {
			return nil, err
		}
	}
	if in.Demand != nil {
		if err := product.SetDemand(*in.Demand); err != nil {
			return nil, err
		}
	}
	if in.LeadTime != nil {
		if err := product.SetLeadTime(*in.LeadTime); err != nil {
			return nil, err
		}
	}
	if in.Inventory != nil {
		if err := product.SetInventory(*in.Inventory); err != nil {
			return nil, err
		}
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto por ID. domain.ErrNotFound si no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

// AddCost agrega o reemplaza un costo por nombre en el libro indicado.
func (uc *ProductUseCase) AddCost(ctx context.Context, id, ledger string, in dto.UpsertCostRequest) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	costs, err := product.Ledger(ledger)
	if err != nil {
		return nil, err
	}
	cost, err := entity.NewCost(in.Name, in.Value)
	if err != nil {
		return nil, err
	}
	if err := costs.Add(cost); err != nil {
		return nil, err
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetCost consulta un costo por nombre. Un nombre ausente devuelve valor 0 (no es error).
func (uc *ProductUseCase) GetCost(ctx context.Context, id, ledger, name string) (*dto.CostResponse, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	costs, err := product.Ledger(ledger)
	if err != nil {
		return nil, err
	}
	c := costs.Get(name)
	return &dto.CostResponse{Name: c.Name(), Value: c.Value()}, nil
}

// EOQ calcula el lote económico con los totales actuales de los libros.
func (uc *ProductUseCase) EOQ(ctx context.Context, id string) (*dto.EOQResponse, error) {
	product, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	q, err := product.OptimumInventoryLevel()
	if err != nil {
		return nil, err
	}
	return &dto.EOQResponse{
		ProductID:             product.ID,
		Demand:                product.Demand,
		TotalVariableCost:     product.TotalVariableCost(),
		TotalStorageCost:      product.TotalStorageCost(),
		OptimumInventoryLevel: q,
	}, nil
}

func (uc *ProductUseCase) load(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return product, nil
}

// ToProductResponse convierte la entidad en DTO.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		Kind:              string(p.Kind),
		Name:              p.Name,
		Price:             p.Price,
		Demand:            p.Demand,
		LeadTime:          p.LeadTime,
		Inventory:         p.Inventory,
		StorageCosts:      toLedgerResponse(entity.LedgerStorage, p.StorageCosts()),
		VariableCosts:     toLedgerResponse(p.VariableLedgerName(), p.VariableCosts()),
		TotalStorageCost:  p.TotalStorageCost(),
		TotalVariableCost: p.TotalVariableCost(),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func toLedgerResponse(name string, l *entity.Costs) dto.LedgerResponse {
	return dto.LedgerResponse{
		Name:  name,
		Costs: toCostResponses(l.Entries()),
		Total: l.Total(),
	}
}

func toCostResponses(costs []entity.Cost) []dto.CostResponse {
	out := make([]dto.CostResponse, 0, len(costs))
	for _, c := range costs {
		out = append(out, dto.CostResponse{Name: c.Name(), Value: c.Value()})
	}
	return out
}
