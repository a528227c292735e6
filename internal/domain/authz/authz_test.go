package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taskhive/taskhive-api/internal/domain/authz"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
)

func TestCanManage_TablaDeVerdad(t *testing.T) {
	res := authz.Resource{
		LeadID:      "lead-1",
		CreatedByID: "creator-1",
		Members: []authz.Membership{
			{UserID: "member-1", Role: entity.MemberRoleMember},
			{UserID: "qc-member-1", Role: entity.MemberRoleQCAdmin},
			{UserID: "lead-member-1", Role: entity.MemberRoleLead},
		},
	}

	cases := []struct {
		name     string
		role     string
		userID   string
		expected bool
	}{
		{"company admin siempre", entity.RoleCompanyAdmin, "nadie", true},
		{"qc admin de empresa siempre", entity.RoleQCAdmin, "nadie", true},
		{"lead designado", entity.RoleUser, "lead-1", true},
		{"creador", entity.RoleUser, "creator-1", true},
		{"miembro con rol QC_ADMIN", entity.RoleUser, "qc-member-1", true},
		{"miembro con rol LEAD", entity.RoleUser, "lead-member-1", true},
		{"miembro raso no gestiona", entity.RoleUser, "member-1", false},
		{"externo no gestiona", entity.RoleUser, "outsider", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, authz.CanManage(tc.role, tc.userID, res))
		})
	}
}

// Un recurso sin lead ni creador no concede nada por ids vacíos.
func TestCanManage_IDsVaciosNoConceden(t *testing.T) {
	res := authz.Resource{}
	assert.False(t, authz.CanManage(entity.RoleUser, "", res))
}
