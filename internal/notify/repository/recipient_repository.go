package repository

import (
	"context"
	"database/sql"
	"fmt"

	"orderdesk/internal/domain"
)

type MySQLRecipientRepository struct {
	db *sql.DB
}

func NewMySQLRecipientRepository(db *sql.DB) *MySQLRecipientRepository {
	return &MySQLRecipientRepository{db: db}
}

const recipientProjection = `
	SELECT id, order_number, billing_name, billing_phone, item_name, total, tracking_number
	FROM orders
`

// FindByMessageType returns the recipient snapshot for every order matching
// the message type's lifecycle predicate. Result order is unspecified; an
// empty result is valid and yields a no-op campaign.
func (r *MySQLRecipientRepository) FindByMessageType(ctx context.Context, t domain.MessageType) ([]domain.Recipient, error) {
	var (
		where string
		args  []any
	)

	switch t {
	case domain.MessageTypeConfirmation:
		where = `WHERE status IN (?, ?)`
		args = []any{domain.OrderStatusToProcess, domain.OrderStatusNotResponding}
	case domain.MessageTypeReturn:
		where = `WHERE shipping_status = ?`
		args = []any{domain.ShippingStatusFailedDelivery}
	case domain.MessageTypeCancelled:
		where = `WHERE status = ?`
		args = []any{domain.OrderStatusCancelled}
	case domain.MessageTypeValued:
		where = `WHERE customer_type = ?`
		args = []any{domain.CustomerTypeValued}
	case domain.MessageTypeTracking:
		where = `WHERE tracking_number <> '' AND shipping_status = ?`
		args = []any{domain.ShippingStatusShipped}
	default:
		return nil, fmt.Errorf("no recipient predicate for message type %q", t)
	}

	rows, err := r.db.QueryContext(ctx, recipientProjection+where, args...)
	if err != nil {
		return nil, fmt.Errorf("querying recipients: %w", err)
	}
	defer rows.Close()

	var recipients []domain.Recipient
	for rows.Next() {
		var rec domain.Recipient
		if err := rows.Scan(
			&rec.OrderID, &rec.OrderNumber, &rec.Name, &rec.Phone,
			&rec.Product, &rec.Total, &rec.TrackingNumber,
		); err != nil {
			return nil, fmt.Errorf("scanning recipient: %w", err)
		}
		recipients = append(recipients, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipients: %w", err)
	}

	return recipients, nil
}

// UpdateStatus transitions a single order by its internal id. Keying on id
// rather than order_number avoids touching sibling rows when re-imported CSVs
// carry duplicate order numbers. The write is idempotent: repeating it with
// the same status leaves the row unchanged, so affected-row counts are not
// inspected.
func (r *MySQLRecipientRepository) UpdateStatus(ctx context.Context, orderID uint, status string) error {
	query := `UPDATE orders SET status = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, status, orderID); err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	return nil
}
