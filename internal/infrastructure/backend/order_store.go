package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopngo/storefront/internal/domain/order"
	"github.com/shopngo/storefront/internal/domain/shared"
	"github.com/shopngo/storefront/internal/domain/shared/valueobject"
)

const ordersPath = "/rest/v1/orders"

// orderItemRow mirrors one element of the jsonb items column
type orderItemRow struct {
	ProductID int64   `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// orderRow mirrors an orders table row. Prices travel as bare numbers and
// are converted to Money at the boundary.
type orderRow struct {
	ID              int64          `json:"id,omitempty"`
	UserEmail       string         `json:"user_email"`
	TotalPrice      float64        `json:"total_price"`
	Items           []orderItemRow `json:"items"`
	PaymentStatus   string         `json:"payment_status"`
	CreatedAt       time.Time      `json:"created_at,omitempty"`
	DeliveryAddress string         `json:"delivery_address,omitempty"`
}

// OrderStore implements order.Store over the backend orders collection
type OrderStore struct {
	client *Client
}

// NewOrderStore creates an order store over the given backend client
func NewOrderStore(client *Client) *OrderStore {
	return &OrderStore{client: client}
}

// Create inserts a new order row; the backend assigns the id and creation
// timestamp and returns the stored representation
func (s *OrderStore) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	var rows []orderRow
	err := s.client.do(ctx, request{
		method: http.MethodPost,
		path:   ordersPath,
		prefer: "return=representation",
		body:   rowFromOrder(o),
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, shared.ErrIntegration
	}
	return orderFromRow(&rows[0]), nil
}

// ListByEmail returns the user's orders, newest first
func (s *OrderStore) ListByEmail(ctx context.Context, email string) ([]order.Order, error) {
	query := url.Values{
		"user_email": []string{"eq." + email},
		"order":      []string{"created_at.desc"},
		"select":     []string{"*"},
	}

	var rows []orderRow
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   ordersPath,
		query:  query,
	}, &rows)
	if err != nil {
		return nil, err
	}

	orders := make([]order.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, *orderFromRow(&rows[i]))
	}
	return orders, nil
}

// FindByID returns a single order, or nil when no row matches
func (s *OrderStore) FindByID(ctx context.Context, id int64) (*order.Order, error) {
	query := url.Values{
		"id":     []string{fmt.Sprintf("eq.%d", id)},
		"select": []string{"*"},
	}

	var rows []orderRow
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   ordersPath,
		query:  query,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return orderFromRow(&rows[0]), nil
}

// FindLatestByEmail returns the user's most recent order, or nil when the
// user has no orders
func (s *OrderStore) FindLatestByEmail(ctx context.Context, email string) (*order.Order, error) {
	query := url.Values{
		"user_email": []string{"eq." + email},
		"order":      []string{"created_at.desc"},
		"limit":      []string{"1"},
		"select":     []string{"*"},
	}

	var rows []orderRow
	err := s.client.do(ctx, request{
		method: http.MethodGet,
		path:   ordersPath,
		query:  query,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return orderFromRow(&rows[0]), nil
}

// UpdateStatus patches the payment status of an order
func (s *OrderStore) UpdateStatus(ctx context.Context, id int64, status order.PaymentStatus) error {
	return s.patch(ctx, id, map[string]any{"payment_status": status.String()})
}

// UpdateDeliveryAddress patches the delivery address of an order
func (s *OrderStore) UpdateDeliveryAddress(ctx context.Context, id int64, address string) error {
	return s.patch(ctx, id, map[string]any{"delivery_address": address})
}

// Delete removes an order row
func (s *OrderStore) Delete(ctx context.Context, id int64) error {
	return s.client.do(ctx, request{
		method: http.MethodDelete,
		path:   ordersPath,
		query:  url.Values{"id": []string{fmt.Sprintf("eq.%d", id)}},
	}, nil)
}

func (s *OrderStore) patch(ctx context.Context, id int64, body map[string]any) error {
	return s.client.do(ctx, request{
		method: http.MethodPatch,
		path:   ordersPath,
		query:  url.Values{"id": []string{fmt.Sprintf("eq.%d", id)}},
		body:   body,
	}, nil)
}

func rowFromOrder(o *order.Order) *orderRow {
	items := make([]orderItemRow, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemRow{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price.Float64(),
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	return &orderRow{
		UserEmail:       o.UserEmail,
		TotalPrice:      o.TotalPrice.Float64(),
		Items:           items,
		PaymentStatus:   o.PaymentStatus.String(),
		DeliveryAddress: o.DeliveryAddress,
	}
}

func orderFromRow(row *orderRow) *order.Order {
	items := make([]order.Item, 0, len(row.Items))
	for _, item := range row.Items {
		items = append(items, order.Item{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     valueobject.NewMoneyEURFromFloat(item.Price),
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}
	return &order.Order{
		ID:              row.ID,
		UserEmail:       row.UserEmail,
		TotalPrice:      valueobject.NewMoneyEURFromFloat(row.TotalPrice),
		Items:           items,
		PaymentStatus:   normalizeStatus(row.PaymentStatus),
		CreatedAt:       row.CreatedAt,
		DeliveryAddress: row.DeliveryAddress,
	}
}

// normalizeStatus collapses legacy status spellings to the two canonical
// values; anything unrecognized is treated as pending
func normalizeStatus(raw string) order.PaymentStatus {
	switch order.PaymentStatus(raw) {
	case order.PaymentStatusSuccess:
		return order.PaymentStatusSuccess
	default:
		return order.PaymentStatusPending
	}
}
