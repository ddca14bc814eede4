package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"carrier": map[string]any{
			"apiKey": "",
			"breaker": map[string]any{
				"consecutiveFailures": 5,
			},
		},
		"geocoding": map[string]any{
			"secondary": map[string]any{
				"apiKey": "",
			},
		},
		"shippingWebhook": map[string]any{
			"secret": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "CARRIER_APIKEY", want: "carrier.apiKey"},
		{envKey: "CARRIER_BREAKER_CONSECUTIVEFAILURES", want: "carrier.breaker.consecutiveFailures"},
		{envKey: "GEOCODING_SECONDARY_APIKEY", want: "geocoding.secondary.apiKey"},
		{envKey: "SHIPPINGWEBHOOK_SECRET", want: "shippingWebhook.secret"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Geocoding.Primary.Timeout = 2 * time.Second

	cfg.applyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, defaultMaxOpenConns, cfg.Pool.MaxOpenConns)
	assert.Equal(t, 2*time.Second, cfg.Geocoding.Primary.Timeout)
	assert.Equal(t, defaultGeocodeTimeout, cfg.Geocoding.Secondary.Timeout)
	assert.Equal(t, defaultCarrierTimeout, cfg.Carrier.Timeout)
	assert.Equal(t, "EUR", cfg.Carrier.Currency)
	assert.Equal(t, uint32(defaultBreakerFailures), cfg.Carrier.Breaker.ConsecutiveFailures)
	assert.Equal(t, uint32(1), cfg.Carrier.Breaker.HalfOpenRequests)
}
