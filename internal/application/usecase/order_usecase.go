package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/deposito-core/internal/application/dto"
	"github.com/jhoicas/deposito-core/internal/domain"
	"github.com/jhoicas/deposito-core/internal/domain/entity"
	"github.com/jhoicas/deposito-core/internal/domain/repository"
)

// OrderLine es una línea de pedido de la entrada de creación.
type OrderLine struct {
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

// OrderUseCase casos de uso de pedidos (compra y venta) del almacén de la sesión.
type OrderUseCase struct {
	orders func(handle string) repository.OrderRepository
	users  func(handle string) repository.UserRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	orders func(handle string) repository.OrderRepository,
	users func(handle string) repository.UserRepository,
) *OrderUseCase {
	return &OrderUseCase{orders: orders, users: users}
}

// Create registra un pedido con sus líneas. El número se genera a partir del
// tipo y la hora si no viene uno; el total es la suma de los subtotales.
func (uc *OrderUseCase) Create(session *entity.Session, orderType, number, notes string, lines []OrderLine) (*entity.Order, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}
	if orderType != entity.OrderTypePurchase && orderType != entity.OrderTypeSale {
		return nil, domain.ErrInvalidInput
	}
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.users(session.StoreHandle).GetByLogin(session.LoginName)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	total := decimal.Zero
	items := make([]*entity.OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.ProductID == 0 || line.Quantity <= 0 || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		subtotal := line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)).Sub(line.Discount)
		if subtotal.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		items = append(items, &entity.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Discount:  line.Discount,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	if strings.TrimSpace(number) == "" {
		number = generateOrderNumber(orderType)
	}
	order := &entity.Order{
		Number: number,
		UserID: user.ID,
		Type:   orderType,
		Total:  total,
		Notes:  notes,
	}
	if err := uc.orders(session.StoreHandle).Create(order, items); err != nil {
		return nil, err
	}
	return order, nil
}

// Get obtiene un pedido con sus líneas por número.
func (uc *OrderUseCase) Get(session *entity.Session, number string) (*entity.Order, []*entity.OrderItem, error) {
	if session == nil {
		return nil, nil, domain.ErrNoSession
	}
	order, items, err := uc.orders(session.StoreHandle).GetByNumber(number)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	return order, items, nil
}

// List devuelve pedidos, opcionalmente filtrados por estado.
func (uc *OrderUseCase) List(session *entity.Session, status string, page dto.PageRequest) ([]*entity.Order, error) {
	if session == nil {
		return nil, domain.ErrNoSession
	}
	page.DefaultPage()
	return uc.orders(session.StoreHandle).List(status, page.Limit, page.Offset)
}

// Track agrega una entrada de rastreo de entrega a un pedido.
func (uc *OrderUseCase) Track(session *entity.Session, number, status, location, notes string) error {
	if session == nil {
		return domain.ErrNoSession
	}
	if status == "" {
		return domain.ErrInvalidInput
	}
	order, _, err := uc.orders(session.StoreHandle).GetByNumber(number)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}
	user, err := uc.users(session.StoreHandle).GetByLogin(session.LoginName)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.orders(session.StoreHandle).AddTracking(&entity.OrderTracking{
		OrderID:  order.ID,
		Status:   status,
		Location: location,
		Notes:    notes,
		UserID:   user.ID,
	})
}

// generateOrderNumber arma un número tipo PED-20240131-150405 según el tipo.
func generateOrderNumber(orderType string) string {
	prefix := "PED"
	if orderType == entity.OrderTypeSale {
		prefix = "VEN"
	}
	return fmt.Sprintf("%s-%s", prefix, time.Now().Format("20060102-150405"))
}
