package dto

// CreateWarehouseRequest entrada para crear un depósito.
type CreateWarehouseRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=200"`
	Type          string  `json:"type" validate:"required"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Zip           string  `json:"zip"`
	ManagerUserID *int64  `json:"manager_user_id"`
	TotalCapacity float64 `json:"total_capacity" validate:"min=0"`
}
