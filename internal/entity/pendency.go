package entity

import (
	"time"

	"github.com/google/uuid"
)

type PendencyStatus string

const (
	PendencyStatusOpen     PendencyStatus = "open"
	PendencyStatusResolved PendencyStatus = "resolved"
)

// ErrorType tags a pendency with the kind of quality issue reported.
// The set below is closed for reporting purposes, but unknown tags are
// carried through with their raw value so a new tag in the database
// never breaks the dashboard.
type ErrorType string

const (
	ErrorTypeNotError    ErrorType = "nao_eh_erro"
	ErrorTypeTranslation ErrorType = "erro_de_traducao"
	ErrorTypeTypo        ErrorType = "erro_de_digitacao"
	ErrorTypeFormatting  ErrorType = "erro_de_formatacao"
	ErrorTypeOmission    ErrorType = "omissao"
	ErrorTypeWrongDoc    ErrorType = "documento_trocado"
)

var errorTypeLabels = map[ErrorType]string{
	ErrorTypeNotError:    "Não é erro",
	ErrorTypeTranslation: "Erro de tradução",
	ErrorTypeTypo:        "Erro de digitação",
	ErrorTypeFormatting:  "Erro de formatação",
	ErrorTypeOmission:    "Omissão",
	ErrorTypeWrongDoc:    "Documento trocado",
}

// Label returns the pt-BR display label, or the raw tag when unknown.
func (t ErrorType) Label() string {
	if label, ok := errorTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// IsRealError reports whether the tag counts as an actual quality error.
// "Não é erro" pendencies are tracked but excluded from the error rate.
func (t ErrorType) IsRealError() bool {
	return t != ErrorTypeNotError
}

// Pendency is one reported quality issue. A pendency always counts as a
// single unit, regardless of how many documents the related order has.
// ErrorTypeLabel is derived, never stored; the service fills it before
// the row leaves the API.
type Pendency struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	OrderID        *uuid.UUID     `db:"order_id" json:"order_id,omitempty"`
	ErrorType      ErrorType      `db:"error_type" json:"error_type"`
	ErrorTypeLabel string         `db:"-" json:"error_type_label,omitempty"`
	Details        *string        `db:"details" json:"details,omitempty"`
	Status         PendencyStatus `db:"status" json:"status"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

type CreatePendencyRequest struct {
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	ErrorType string     `json:"error_type" binding:"required"`
	Details   *string    `json:"details,omitempty"`
}

type PendencyFilter struct {
	OrderID   *string    `form:"order_id" json:"order_id,omitempty"`
	ErrorType *string    `form:"error_type" json:"error_type,omitempty"`
	Status    *string    `form:"status" json:"status,omitempty"`
	StartTime *time.Time `form:"start_time" json:"start_time,omitempty"`
	EndTime   *time.Time `form:"end_time" json:"end_time,omitempty"`
	Limit     int        `form:"limit" json:"limit"`
	Offset    int        `form:"offset" json:"offset"`
}
