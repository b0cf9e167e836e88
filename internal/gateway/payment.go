package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Preference is the checkout request handed to the payment provider
// for one reservation deposit.
type Preference struct {
	ExternalReference string  `json:"external_reference"`
	Title             string  `json:"title"`
	Amount            float64 `json:"unit_price"`
	SuccessURL        string  `json:"success_url,omitempty"`
	FailureURL        string  `json:"failure_url,omitempty"`
}

// PreferenceResult carries the provider identifiers stored on the
// reservation: the preference id (payment token) and the checkout URL.
type PreferenceResult struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

// PaymentGateway is the external payment collaborator. The wire
// protocol lives behind this interface; the booking core only knows
// about preferences and webhook results.
type PaymentGateway interface {
	CreatePreference(ctx context.Context, pref *Preference) (*PreferenceResult, error)
}

type httpGateway struct {
	baseURL     string
	accessToken string
	client      *http.Client
	log         *zap.Logger
}

// NewHTTPGateway builds a gateway client against the configured
// checkout API.
func NewHTTPGateway(baseURL, accessToken string, log *zap.Logger) PaymentGateway {
	return &httpGateway{
		baseURL:     baseURL,
		accessToken: accessToken,
		client:      &http.Client{Timeout: 10 * time.Second},
		log:         log.With(zap.String("gateway", "payment")),
	}
}

func (g *httpGateway) CreatePreference(ctx context.Context, pref *Preference) (*PreferenceResult, error) {
	body, err := json.Marshal(pref)
	if err != nil {
		return nil, fmt.Errorf("marshal preference: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build preference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.accessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error("Payment preference request failed",
			zap.Error(err),
			zap.String("external_reference", pref.ExternalReference),
		)
		return nil, fmt.Errorf("create preference: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.log.Error("Payment preference rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("external_reference", pref.ExternalReference),
		)
		return nil, fmt.Errorf("create preference: gateway returned %d", resp.StatusCode)
	}

	var result PreferenceResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode preference response: %w", err)
	}

	g.log.Info("Payment preference created",
		zap.String("preference_id", result.ID),
		zap.String("external_reference", pref.ExternalReference),
	)

	return &result, nil
}
