package backend

import (
	"context"
	"delivery-driver-service/internal/domain"
	"delivery-driver-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPDeliveryRepository implements DeliveryRepository against the remote
// delivery REST backend the driver app authenticates with.
//
// Rows that fail validation are skipped and logged instead of failing the
// whole listing. The client is safe for concurrent use.
type HTTPDeliveryRepository struct {
	session *http.Client
	baseURL string
	token   string
	backoff time.Duration
}

type deliveryPayload struct {
	ID           int     `json:"id"`
	Reference    string  `json:"reference"`
	CustomerName string  `json:"customer_name"`
	Address      string  `json:"address"`
	Status       string  `json:"status"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
}

func NewHTTPDeliveryRepository(baseURL string, token string) (*HTTPDeliveryRepository, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("delivery backend: base url is empty")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("delivery backend: invalid base url %q: %w", baseURL, err)
	}

	return &HTTPDeliveryRepository{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		token:   token,
		backoff: 200 * time.Millisecond,
	}, nil
}

// Fetch the driver's deliveries from GET {base}/deliveries.
func (c *HTTPDeliveryRepository) ListDeliveries(ctx context.Context) (_ []*domain.Delivery, err error) {
	defer obs.Time(ctx, "backend.ListDeliveries")(&err)

	endpoint := c.baseURL + "/deliveries"

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, endpoint, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("list backend deliveries: %w", err)
	}
	defer resp.Body.Close()

	var payload []deliveryPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("list backend deliveries: decode response: %w", err)
	}

	out := make([]*domain.Delivery, 0, len(payload))
	for _, p := range payload {
		d := &domain.Delivery{
			DeliveryID:   p.ID,
			Reference:    p.Reference,
			CustomerName: p.CustomerName,
			Address:      strings.TrimSpace(p.Address),
			Status:       p.Status,
			Lat:          p.Lat,
			Lng:          p.Lng,
		}
		if err := d.Validate(); err != nil {
			log.Printf("backend delivery skipped: %v", err)
			continue
		}
		out = append(out, d)
	}

	return out, nil
}
