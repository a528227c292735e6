package usecase

import (
	"context"
	"time"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// CompanyUseCase operaciones de la empresa del caller. El estado de
// suscripción no se toca aquí: solo la consola superadmin y la transición
// perezosa del gate lo mutan.
type CompanyUseCase struct {
	companyRepo   repository.CompanyRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(companyRepo repository.CompanyRepository, analyticsRepo repository.AnalyticsRepository) *CompanyUseCase {
	return &CompanyUseCase{companyRepo: companyRepo, analyticsRepo: analyticsRepo}
}

// Get obtiene la empresa del caller.
func (uc *CompanyUseCase) Get(ctx context.Context, companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	return toCompanyResponse(company), nil
}

// Update actualiza los datos editables de la empresa. Cambiar el nombre exige
// que siga siendo único.
func (uc *CompanyUseCase) Update(ctx context.Context, companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	if in.Name != nil && *in.Name != company.Name {
		dup, err := uc.companyRepo.GetByName(ctx, *in.Name)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, domain.ErrDuplicate
		}
		company.Name = *in.Name
	}
	if in.Logo != nil {
		company.Logo = *in.Logo
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Website != nil {
		company.Website = *in.Website
	}
	company.UpdatedAt = time.Now()
	if err := uc.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Stats agregados de la empresa (usuarios, departamentos, proyectos, SOPs).
func (uc *CompanyUseCase) Stats(ctx context.Context, companyID string) (*dto.CompanyStatsResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	dash, err := uc.analyticsRepo.CompanyDashboard(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.CompanyStatsResponse{
		TotalUsers:         dash.TotalUsers,
		ActiveUsers:        dash.ActiveUsers,
		TotalDepartments:   dash.TotalDepartments,
		TotalProjects:      dash.TotalProjects,
		TotalSops:          dash.TotalSops,
		SubscriptionStatus: company.SubscriptionStatus,
		TrialEndsAt:        company.TrialEndsAt,
	}, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		CompanyCode:        c.CompanyCode,
		Logo:               c.Logo,
		Address:            c.Address,
		Phone:              c.Phone,
		Website:            c.Website,
		SubscriptionStatus: c.SubscriptionStatus,
		TrialEndsAt:        c.TrialEndsAt,
		SubscriptionEndsAt: c.SubscriptionEndsAt,
		IsActive:           c.IsActive,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
