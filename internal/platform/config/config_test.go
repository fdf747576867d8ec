package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.EqualValues(t, 5, cfg.VoteQuorum)
	assert.EqualValues(t, 1008, cfg.GovernanceAsset)
	assert.EqualValues(t, 100_000, cfg.BasePrice)
	assert.EqualValues(t, 1, cfg.Slope)
	assert.False(t, cfg.LegacyCounterMode)
	assert.Equal(t, "carbonx.audit", cfg.KafkaTopic)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("CARBONX_ADDR", ":9090")
	t.Setenv("CARBONX_VOTE_QUORUM", "1")
	t.Setenv("CARBONX_BASE_PRICE", "250")
	t.Setenv("CARBONX_LEGACY_COUNTER_MODE", "true")
	t.Setenv("CARBONX_KAFKA_BROKERS", "broker-1:9092, broker-2:9092")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.EqualValues(t, 1, cfg.VoteQuorum)
	assert.EqualValues(t, 250, cfg.BasePrice)
	assert.True(t, cfg.LegacyCounterMode)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
}

func TestFromEnvBadNumberFallsBack(t *testing.T) {
	t.Setenv("CARBONX_VOTE_QUORUM", "many")

	cfg := FromEnv()
	assert.EqualValues(t, 5, cfg.VoteQuorum)
}
