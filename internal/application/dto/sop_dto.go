package dto

import "time"

// CreateSopRequest entrada para crear un SOP (nace PENDING_APPROVAL).
type CreateSopRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=300"`
	Description  string   `json:"description,omitempty"`
	Type         string   `json:"type" validate:"required,oneof=VIDEO DOCUMENT PDF LINK IMAGE"`
	FileURL      string   `json:"file_url" validate:"required,url"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	Duration     *int     `json:"duration,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// UpdateSopRequest campos editables de un SOP.
type UpdateSopRequest struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	FileURL      *string  `json:"file_url,omitempty"`
	ThumbnailURL *string  `json:"thumbnail_url,omitempty"`
	Duration     *int     `json:"duration,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// RejectSopRequest motivo del rechazo.
type RejectSopRequest struct {
	RejectionReason string `json:"rejection_reason" validate:"required"`
}

// SopQuery filtros de listado de SOPs.
type SopQuery struct {
	Type   string `query:"type"`
	Status string `query:"status"`
	Search string `query:"search"`
}

// SopResponse salida de un SOP.
type SopResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Type            string     `json:"type"`
	FileURL         string     `json:"file_url"`
	ThumbnailURL    string     `json:"thumbnail_url,omitempty"`
	Duration        *int       `json:"duration,omitempty"`
	Status          string     `json:"status"`
	CompanyID       string     `json:"company_id"`
	CreatedByID     string     `json:"created_by_id"`
	ApprovedByID    *string    `json:"approved_by_id,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	ViewCount       int        `json:"view_count"`
	Tags            []string   `json:"tags,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SopStatsResponse agregados de SOPs.
type SopStatsResponse struct {
	Total    int            `json:"total"`
	Approved int            `json:"approved"`
	Pending  int            `json:"pending"`
	Rejected int            `json:"rejected"`
	ByType   map[string]int `json:"by_type"`
}
