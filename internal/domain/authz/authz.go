// Package authz concentra el predicado de autorización por recurso que antes
// vivía disperso en cada servicio. Es puro: recibe explícitamente los datos de
// propiedad/membresía del recurso en lugar de consultarlos.
package authz

import "github.com/taskhive/taskhive-api/internal/domain/entity"

// Membership es la vista mínima de una membresía que necesita el predicado.
type Membership struct {
	UserID string
	Role   string // MEMBER, QC_ADMIN, LEAD
}

// Resource describe la propiedad y membresías de un recurso gestionable
// (proyecto, tarea vía su proyecto, sala de chat vía su proyecto).
type Resource struct {
	LeadID      string // id del lead designado ("" si no hay)
	CreatedByID string // id del creador ("" si no aplica)
	Members     []Membership
}

// CanManage decide si un usuario puede gestionar el recurso:
//   - rol de empresa COMPANY_ADMIN o QC_ADMIN, o
//   - es el lead designado o el creador del recurso, o
//   - figura en la lista de miembros con rol elevado (QC_ADMIN o LEAD).
func CanManage(companyRole, userID string, res Resource) bool {
	if companyRole == entity.RoleCompanyAdmin || companyRole == entity.RoleQCAdmin {
		return true
	}
	if res.LeadID != "" && res.LeadID == userID {
		return true
	}
	if res.CreatedByID != "" && res.CreatedByID == userID {
		return true
	}
	for _, m := range res.Members {
		if m.UserID == userID && (m.Role == entity.MemberRoleQCAdmin || m.Role == entity.MemberRoleLead) {
			return true
		}
	}
	return false
}
