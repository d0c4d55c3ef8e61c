package repositories

import (
	"context"
	"database/sql"
	"delivery-driver-service/internal/domain"
	"delivery-driver-service/internal/platform/obs"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the DeliveryRepository port.
type PostgresDeliveryRepository struct{ DB *sql.DB }

func NewPostgresDeliveryRepository(db *sql.DB) *PostgresDeliveryRepository {
	return &PostgresDeliveryRepository{DB: db}
}

// Return all deliveries stored in the database.
func (s *PostgresDeliveryRepository) ListDeliveries(ctx context.Context) (_ []*domain.Delivery, err error) {
	defer obs.Time(ctx, "deliveries.repo.List")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres delivery repository: DB is nil")
	}

	query := `
	SELECT
		delivery_id,
		reference,
		customer_name,
		address,
		status,
		lat,
		lng
	FROM deliveries
	ORDER BY delivery_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: query deliveries table: %w", err)
	}
	defer rows.Close()

	deliveries := make([]*domain.Delivery, 0, 64)
	for rows.Next() {
		var d domain.Delivery
		err := rows.Scan(&d.DeliveryID, &d.Reference, &d.CustomerName, &d.Address, &d.Status, &d.Lat, &d.Lng)
		if err != nil {
			return nil, fmt.Errorf("list deliveries: scan row: %w", err)
		}
		deliveries = append(deliveries, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deliveries: row iteration: %w", err)
	}

	return deliveries, nil
}
