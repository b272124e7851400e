package entity

// Warehouse representa un depósito físico de la empresa.
type Warehouse struct {
	ID            int64
	Name          string
	Type          string
	Address       string
	City          string
	State         string
	Zip           string
	ManagerUserID *int64 // referencia a TenantUser dentro del mismo almacén
	TotalCapacity float64
	Status        string // ativo por defecto
}

// ProductLocation ubica un producto dentro de un depósito (pasillo/estante/nivel/posición).
type ProductLocation struct {
	ID          int64
	WarehouseID int64
	ProductID   int64
	Quantity    int64
	Aisle       string
	Shelf       string
	Level       string
	Position    string
}
