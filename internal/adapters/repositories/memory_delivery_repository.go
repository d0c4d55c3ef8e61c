package repositories

import (
	"context"
	"delivery-driver-service/internal/domain"
	"sync"
)

// In-memory implementation of the DeliveryRepository port.
// ListDeliveries hands out copies, so callers cannot modify stored state.
type MemoryDeliveryRepository struct {
	mu         sync.RWMutex
	deliveries []domain.Delivery
}

func NewMemoryDeliveryRepository(deliveries []domain.Delivery) *MemoryDeliveryRepository {
	r := &MemoryDeliveryRepository{}
	r.Replace(deliveries)
	return r
}

// Replace swaps the stored deliveries for a copy of the given ones.
func (r *MemoryDeliveryRepository) Replace(deliveries []domain.Delivery) {
	cp := make([]domain.Delivery, len(deliveries))
	copy(cp, deliveries)

	r.mu.Lock()
	r.deliveries = cp
	r.mu.Unlock()
}

func (r *MemoryDeliveryRepository) ListDeliveries(ctx context.Context) ([]*domain.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Delivery, 0, len(r.deliveries))
	for _, d := range r.deliveries {
		d := d
		out = append(out, &d)
	}
	return out, nil
}
