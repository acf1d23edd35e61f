package entity

import "time"

// KoajCode código de categoría del catálogo de códigos de barras KOAJ.
type KoajCode struct {
	ID          int64
	Code        string // 1 a 10 dígitos, único
	Category    string
	Description string
	AppliesTo   string // hombre, mujer, niño, niña, todos
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
