package entity

import "time"

// Roles de membresía de proyecto (distintos del rol de empresa del usuario).
const (
	MemberRoleMember  = "MEMBER"
	MemberRoleQCAdmin = "QC_ADMIN"
	MemberRoleLead    = "LEAD"
)

// ProjectMember es la fila de unión (project, user): rol por proyecto y
// acumulador de puntos ganados dentro de ese proyecto. El par
// (ProjectID, UserID) es único.
type ProjectMember struct {
	ID           string
	ProjectID    string
	UserID       string
	Role         string // MEMBER, QC_ADMIN, LEAD
	PointsEarned int
	JoinedAt     time.Time
}
