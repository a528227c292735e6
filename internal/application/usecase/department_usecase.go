package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// DepartmentUseCase gestión de departamentos de la empresa.
type DepartmentUseCase struct {
	departmentRepo repository.DepartmentRepository
	userRepo       repository.UserRepository
}

// NewDepartmentUseCase construye el caso de uso.
func NewDepartmentUseCase(departmentRepo repository.DepartmentRepository, userRepo repository.UserRepository) *DepartmentUseCase {
	return &DepartmentUseCase{departmentRepo: departmentRepo, userRepo: userRepo}
}

// Create crea un departamento. Si hay lead designado debe pertenecer a la empresa.
func (uc *DepartmentUseCase) Create(ctx context.Context, companyID string, in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if in.LeadID != nil {
		if err := uc.ensureCompanyUser(ctx, *in.LeadID, companyID); err != nil {
			return nil, err
		}
	}
	now := time.Now()
	department := &entity.Department{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Tag:         in.Tag,
		CompanyID:   companyID,
		LeadID:      in.LeadID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.departmentRepo.Create(ctx, department); err != nil {
		return nil, err
	}
	return toDepartmentResponse(department), nil
}

// GetByID obtiene un departamento de la empresa.
func (uc *DepartmentUseCase) GetByID(ctx context.Context, id, companyID string) (*dto.DepartmentResponse, error) {
	department, err := uc.departmentRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, nil
	}
	return toDepartmentResponse(department), nil
}

// List lista los departamentos de la empresa.
func (uc *DepartmentUseCase) List(ctx context.Context, companyID string) ([]dto.DepartmentResponse, error) {
	list, err := uc.departmentRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DepartmentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDepartmentResponse(d))
	}
	return items, nil
}

// Update actualiza un departamento.
func (uc *DepartmentUseCase) Update(ctx context.Context, id, companyID string, in dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	department, err := uc.departmentRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, nil
	}
	if in.Name != nil {
		department.Name = *in.Name
	}
	if in.Description != nil {
		department.Description = *in.Description
	}
	if in.Tag != nil {
		department.Tag = *in.Tag
	}
	if in.LeadID != nil {
		if err := uc.ensureCompanyUser(ctx, *in.LeadID, companyID); err != nil {
			return nil, err
		}
		department.LeadID = in.LeadID
	}
	department.UpdatedAt = time.Now()
	if err := uc.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}
	return toDepartmentResponse(department), nil
}

// AssignUsers asigna un conjunto de usuarios de la empresa al departamento.
func (uc *DepartmentUseCase) AssignUsers(ctx context.Context, id, companyID string, in dto.AssignUsersRequest) error {
	department, err := uc.departmentRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if department == nil {
		return domain.ErrNotFound
	}
	return uc.userRepo.AssignDepartment(ctx, companyID, in.UserIDs, id)
}

// Delete elimina un departamento tras desasociar a sus usuarios.
func (uc *DepartmentUseCase) Delete(ctx context.Context, id, companyID string) error {
	department, err := uc.departmentRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if department == nil {
		return domain.ErrNotFound
	}
	if err := uc.userRepo.ClearDepartment(ctx, id); err != nil {
		return err
	}
	return uc.departmentRepo.Delete(ctx, id)
}

func (uc *DepartmentUseCase) ensureCompanyUser(ctx context.Context, userID, companyID string) error {
	user, err := uc.userRepo.GetByIDAndCompany(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return nil
}

func toDepartmentResponse(d *entity.Department) *dto.DepartmentResponse {
	if d == nil {
		return nil
	}
	return &dto.DepartmentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Tag:         d.Tag,
		CompanyID:   d.CompanyID,
		LeadID:      d.LeadID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
