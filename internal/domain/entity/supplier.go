package entity

// Supplier representa un proveedor de la empresa.
type Supplier struct {
	ID                int64
	LegalName         string
	TradeName         string
	TaxID             string // único por almacén
	StateRegistration string
	Address           string
	City              string
	State             string
	Zip               string
	Phone             string
	Email             string
	ContactName       string
	DeliveryDays      int64
	PaymentTerms      string
	Status            string
}
