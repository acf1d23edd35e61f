package entity

// Claves de agrupación para facturas sin cliente o sin vendedor.
const (
	FinalConsumerID = "consumidor-final"
	NoSellerID      = "sin-vendedor"
)

// Customer cliente referenciado por la factura.
type Customer struct {
	ID             string
	Name           string
	Identification string
	Email          string
	Phone          string
}

// Seller vendedor asignado a la factura.
type Seller struct {
	ID             string
	Name           string
	Identification string
}
