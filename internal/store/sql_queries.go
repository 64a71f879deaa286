package store

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-pos-sync/models"
	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	findTerminalQuery = `SELECT terminal_id, name, shared_key_hash, active, version, last_ip, last_auth_at, last_seen_at
		FROM terminals
		WHERE terminal_id = $1;`

	touchTerminalAuthQuery = `UPDATE terminals
		SET version = $2, last_ip = $3, last_auth_at = $4, last_seen_at = $4
		WHERE terminal_id = $1;`

	saveHeartbeatQuery = `UPDATE terminals
		SET last_seen_at = $2,
			cashier = $3,
			printer_online = $4,
			scanner_online = $5,
			cash_drawer_online = $6,
			daily_sales_count = $7,
			daily_sales_total = $8,
			pending_outbox = $9
		WHERE terminal_id = $1;`

	insertSaleQuery = `INSERT INTO sales (ticket_number, terminal_id, cashier, total, discount, payment_method, sold_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (ticket_number) DO NOTHING
		RETURNING id;`

	saleOwnerQuery = `SELECT terminal_id FROM sales WHERE ticket_number = $1;`

	insertMovementQuery = `INSERT INTO stock_movements (idempotency_key, terminal_id, product_id, quantity, kind, reason, ticket_number, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (idempotency_key) DO NOTHING
		RETURNING id;`

	applyMovementQuery = `UPDATE products
		SET stock = stock + $2, last_updated = clock_timestamp()
		WHERE id = $1;`

	insertEventQuery = `INSERT INTO terminal_events (event_id, terminal_id, kind, cashier, detail, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO NOTHING
		RETURNING id;`

	statisticsQuery = `SELECT
		(SELECT COUNT(*) FROM products WHERE active AND for_sale),
		(SELECT COUNT(*) FROM services WHERE active),
		(SELECT COUNT(*) FROM promotions WHERE active AND (ends_at IS NULL OR ends_at > $3)),
		(SELECT COUNT(*) FROM sales WHERE sold_at >= $1),
		(SELECT COUNT(*) FROM terminals WHERE active),
		(SELECT COUNT(*) FROM terminals WHERE active AND last_seen_at >= $2);`
)

// feedTable describes how an entity type is read from its table. The
// deleted column folds the visibility rules in: rows that may no longer be
// sold are emitted as tombstones.
type feedTable struct {
	table   string
	key     string
	columns []string
}

var feedTables = map[models.EntityType]feedTable{
	models.EntityProducts: {
		table: "products",
		key:   "id",
		columns: []string{
			"id", "code", "barcode", "name", "price", "stock",
			"NOT (active AND for_sale) AS deleted", "last_updated",
		},
	},
	models.EntityServices: {
		table:   "services",
		key:     "id",
		columns: []string{"id", "code", "name", "price", "NOT active AS deleted", "last_updated"},
	},
	models.EntityPromotions: {
		table: "promotions",
		key:   "id",
		columns: []string{
			"id", "name", "product_id", "discount_percent", "starts_at", "ends_at",
			"NOT active AS deleted", "last_updated",
		},
	},
	models.EntityConfigs: {
		table:   "configs",
		key:     "key",
		columns: []string{"key", "value", "NOT active AS deleted", "last_updated"},
	},
}

// buildChangesQuery selects at most limit rows of the table changed after
// since, ordered by (last_updated, key). A non-positive limit means no limit.
func buildChangesQuery(t feedTable, since time.Time, limit int) (string, []any, error) {
	builder := psql.Select(t.columns...).
		From(t.table).
		Where(sq.Gt{"last_updated": since}).
		OrderBy("last_updated", t.key)

	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildTieQuery selects the rows that share the timestamp of the last row of
// a full page and sort after it, so one timestamp never straddles two pages.
func buildTieQuery(t feedTable, at time.Time, afterKey any) (string, []any, error) {
	query, args, err := psql.Select(t.columns...).
		From(t.table).
		Where(sq.And{
			sq.Eq{"last_updated": at},
			sq.Gt{t.key: afterKey},
		}).
		OrderBy(t.key).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildSaleLinesInsert inserts all lines of one sale in a single statement.
func buildSaleLinesInsert(saleID int64, lines []models.SaleLine) (string, []any, error) {
	builder := psql.Insert("sale_lines").
		Columns("sale_id", "line_no", "product_id", "service_id", "quantity", "unit_price", "subtotal")

	for i, line := range lines {
		builder = builder.Values(saleID, i+1, line.ProductID, line.ServiceID, line.Quantity, line.UnitPrice, line.Subtotal)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
