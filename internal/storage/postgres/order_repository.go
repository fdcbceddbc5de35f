package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/prograshaco/burger-oms/internal/domain"
)

const opTimeout = 5 * time.Second

const orderColumns = `id, user_id, user_name, user_email, user_phone, user_address, items, total, status, created_at, updated_at`

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

func (r *orderRepository) Create(input domain.NewOrder) (string, error) {
	if input.Total < 0 {
		return "", domain.ErrTotalNegative
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	orderID := "order_" + uuid.NewString()
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (
			id, user_id, user_name, user_email, user_phone, user_address,
			items, total, status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		orderID, input.UserID, input.UserName, input.UserEmail, input.UserPhone, input.UserAddress,
		input.Items, formatTotal(input.Total), string(domain.OrderStatusPending), now, now,
	)
	if err != nil {
		return "", wrapStoreErr("insert order", err)
	}

	return orderID, nil
}

func (r *orderRepository) GetByID(id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	row := r.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id)

	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, wrapStoreErr("select order", err)
	}

	return order, nil
}

func (r *orderRepository) GetAll() ([]domain.Order, error) {
	return r.query(`
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC, id DESC
	`)
}

func (r *orderRepository) GetByStatus(status domain.OrderStatus) ([]domain.Order, error) {
	return r.query(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = $1
		ORDER BY created_at DESC, id DESC
	`, string(status))
}

func (r *orderRepository) UpdateStatus(orderID string, newStatus domain.OrderStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1,
		    updated_at = $2
		WHERE id = $3
	`, string(newStatus), time.Now().UTC(), orderID)
	if err != nil {
		return wrapStoreErr("update order status", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) query(query string, args ...interface{}) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapStoreErr("list orders", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRowDecode, err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapStoreErr("iterate order rows", err)
	}

	return orders, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		order  domain.Order
		status string
		total  string
	)
	if err := row.Scan(
		&order.ID, &order.UserID, &order.UserName, &order.UserEmail,
		&order.UserPhone, &order.UserAddress, &order.Items, &total,
		&status, &order.CreatedAt, &order.UpdatedAt,
	); err != nil {
		return domain.Order{}, err
	}
	order.Status = domain.OrderStatus(status)
	order.Total = parseTotal(total)
	return order, nil
}

// parseTotal терпимо разбирает сумму из текстовой колонки.
// Мусорные значения превращаются в 0.0, а не в ошибку чтения.
func parseTotal(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

func formatTotal(total float64) string {
	return strconv.FormatFloat(total, 'f', -1, 64)
}

func wrapStoreErr(op string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUnavailable распознаёт ошибки соединения (класс 08) и обрывы драйвера.
func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08")
	}
	return false
}

var _ domain.OrderRepository = (*orderRepository)(nil)
