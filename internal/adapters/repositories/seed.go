package repositories

import (
	"context"
	"database/sql"
	"delivery-driver-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

type DeliverySeed struct {
	DeliveryID   int     `json:"delivery_id"`
	Reference    string  `json:"reference"`
	CustomerName string  `json:"customer_name"`
	Address      string  `json:"address"`
	Status       string  `json:"status"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
}

// LoadSeedFile reads and validates a JSON array of deliveries.
func LoadSeedFile(jsonPath string) ([]domain.Delivery, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed deliveries: read %q: %w", jsonPath, err)
	}
	return ParseSeed(bytes)
}

// ParseSeed decodes seed rows, trimming text fields and defaulting an empty
// status to pending. Any invalid row fails the whole batch.
func ParseSeed(payload []byte) ([]domain.Delivery, error) {
	var data []DeliverySeed
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("seed deliveries: parse json: %w", err)
	}

	seen := make(map[int]struct{}, len(data))
	rows := make([]domain.Delivery, 0, len(data))
	for i, item := range data {
		d := domain.Delivery{
			DeliveryID:   item.DeliveryID,
			Reference:    strings.TrimSpace(item.Reference),
			CustomerName: strings.TrimSpace(item.CustomerName),
			Address:      strings.TrimSpace(item.Address),
			Status:       strings.TrimSpace(item.Status),
			Lat:          item.Lat,
			Lng:          item.Lng,
		}
		if d.Status == "" {
			d.Status = domain.StatusPending
		}

		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("seed deliveries: item %d: %w", i+1, err)
		}
		if _, dup := seen[d.DeliveryID]; dup {
			return nil, fmt.Errorf("seed deliveries: item %d: duplicate delivery_id %d", i+1, d.DeliveryID)
		}
		seen[d.DeliveryID] = struct{}{}

		rows = append(rows, d)
	}

	return rows, nil
}

// Populate the deliveries table with the given rows, replacing existing ids.
func SeedDeliveries(ctx context.Context, db *sql.DB, rows []domain.Delivery) error {
	if db == nil {
		return errors.New("seed deliveries: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed deliveries: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO deliveries (delivery_id, reference, customer_name, address, status, lat, lng)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (delivery_id) DO UPDATE
	SET reference = EXCLUDED.reference,
		customer_name = EXCLUDED.customer_name,
		address = EXCLUDED.address,
		status = EXCLUDED.status,
		lat = EXCLUDED.lat,
		lng = EXCLUDED.lng;
	`)
	if err != nil {
		return fmt.Errorf("seed deliveries: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range rows {
		if _, err := stmt.ExecContext(ctx, d.DeliveryID, d.Reference, d.CustomerName, d.Address, d.Status, d.Lat, d.Lng); err != nil {
			return fmt.Errorf("seed deliveries: insert delivery_id=%d: %w", d.DeliveryID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed deliveries: commit tx: %w", err)
	}

	return nil
}

// SeedFromJSON loads jsonPath and writes its rows to the database,
// returning how many rows were written.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	rows, err := LoadSeedFile(jsonPath)
	if err != nil {
		return 0, err
	}
	if err := SeedDeliveries(ctx, db, rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}
