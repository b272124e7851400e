package dto

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	LegalName         string `json:"legal_name" validate:"required,min=1,max=200"`
	TradeName         string `json:"trade_name"`
	TaxID             string `json:"tax_id"`
	StateRegistration string `json:"state_registration"`
	Address           string `json:"address"`
	City              string `json:"city"`
	State             string `json:"state"`
	Zip               string `json:"zip"`
	Phone             string `json:"phone"`
	Email             string `json:"email" validate:"omitempty,email"`
	ContactName       string `json:"contact_name"`
	DeliveryDays      int64  `json:"delivery_days" validate:"min=0"`
	PaymentTerms      string `json:"payment_terms"`
}
