package entity

import "time"

// Tipos de SOP (procedimiento operativo estándar).
const (
	SopTypeVideo    = "VIDEO"
	SopTypeDocument = "DOCUMENT"
	SopTypePDF      = "PDF"
	SopTypeLink     = "LINK"
	SopTypeImage    = "IMAGE"
)

// Estados de aprobación de un SOP.
const (
	SopDraft           = "DRAFT"
	SopPendingApproval = "PENDING_APPROVAL"
	SopApproved        = "APPROVED"
	SopRejected        = "REJECTED"
)

// Sop es un procedimiento operativo estándar de la empresa.
type Sop struct {
	ID              string
	Title           string
	Description     string
	Type            string // ver constantes SopType*
	FileURL         string
	ThumbnailURL    string
	Duration        *int // para videos, en segundos
	Status          string
	CompanyID       string
	CreatedByID     string
	ApprovedByID    *string
	ApprovedAt      *time.Time
	RejectionReason *string
	ViewCount       int
	Tags            []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
