package dto

import "time"

// KoajCodeRequest alta o edición de un código KOAJ; nil = sin cambio al editar.
type KoajCodeRequest struct {
	Code        *string `json:"code"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	AppliesTo   *string `json:"applies_to"`
	IsActive    *bool   `json:"is_active"`
}

// KoajCodeResponse un código del catálogo.
type KoajCodeResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	AppliesTo   string    `json:"applies_to"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// KoajCodeList listado con total.
type KoajCodeList struct {
	Codes []KoajCodeResponse `json:"codes"`
	Total int                `json:"total"`
}

// CodeLabel par código / significado usado en la guía de lectura.
type CodeLabel struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// BarcodeGuide guía para leer los códigos de barras KOAJ.
type BarcodeGuide struct {
	Structure      string            `json:"structure"`
	ExampleBarcode string            `json:"example_barcode"`
	ExampleParts   map[string]string `json:"example_parts"`
	GenderPrefixes []CodeLabel       `json:"gender_prefixes"`
	SizeCodes      []CodeLabel       `json:"size_codes"`
	Notes          []string          `json:"notes"`
}
