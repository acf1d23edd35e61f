package catalog

import "github.com/jhoicas/alegra-reports-api/internal/application/dto"

// 10 / GÉNERO / CÓDIGO / PRECIO / TALLA
var barcodeGuide = dto.BarcodeGuide{
	Structure:      "10 / GÉNERO / CÓDIGO / PRECIO / TALLA",
	ExampleBarcode: "1051421099032",
	ExampleParts: map[string]string{
		"prefix":        "10",
		"gender":        "51",
		"category_code": "42",
		"price":         "10990",
		"size":          "32",
	},
	GenderPrefixes: []dto.CodeLabel{
		{Code: "1051", Label: "Hombre"},
		{Code: "1052", Label: "Mujer"},
		{Code: "1053", Label: "Niño"},
		{Code: "1054", Label: "Niña"},
	},
	SizeCodes: []dto.CodeLabel{
		{Code: "1", Label: "XS"},
		{Code: "2", Label: "S"},
		{Code: "3", Label: "M"},
		{Code: "4", Label: "L"},
		{Code: "5", Label: "XL"},
		{Code: "6", Label: "2XL"},
		{Code: "28", Label: "Talla 28"},
		{Code: "30", Label: "Talla 30"},
		{Code: "32", Label: "Talla 32"},
		{Code: "34", Label: "Talla 34"},
		{Code: "36", Label: "Talla 36"},
		{Code: "38", Label: "Talla 38"},
		{Code: "40", Label: "Talla 40"},
	},
	Notes: []string{
		"El prefijo 10 es estándar para todos los productos KOAJ",
		"El precio se lee en centenas (10990 = $109.900)",
		"Las tallas numéricas (28-40) se usan principalmente para pantalones",
		"Las tallas alfabéticas (1-6) corresponden a XS-2XL",
	},
}
