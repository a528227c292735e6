package repository

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

// SopFilter filtros de listado de SOPs.
type SopFilter struct {
	Type   string
	Status string
	Search string // título y descripción, ILIKE
}

// SopStats agregados de SOPs por empresa.
type SopStats struct {
	Total    int
	Approved int
	Pending  int
	Rejected int
	ByType   map[string]int
}

// SopRepository define el puerto de persistencia para Sop (DIP).
type SopRepository interface {
	Create(ctx context.Context, sop *entity.Sop) error
	GetByID(ctx context.Context, id, companyID string) (*entity.Sop, error)
	Update(ctx context.Context, sop *entity.Sop) error
	List(ctx context.Context, companyID string, filter SopFilter) ([]*entity.Sop, error)
	IncrementViewCount(ctx context.Context, id string) error
	Stats(ctx context.Context, companyID string) (*SopStats, error)
	Delete(ctx context.Context, id string) error
}
