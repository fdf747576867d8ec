package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/Eklavvyaaaaa/Carbonx/pkg/domain"
)

// Server captures deployment-level configuration for the ledger service.
type Server struct {
	Addr          string
	JWTSigningKey string

	// Admin is the privileged account set at deployment; immutable
	// thereafter except by redeploy.
	Admin domain.Address

	// ContractAddress is the deployment's own settlement-layer account,
	// the receiver all inbound payments and transfers must name.
	ContractAddress domain.Address

	// VoteQuorum is the vote count that approves an issuer without admin
	// intervention.
	VoteQuorum uint64

	// GovernanceAsset is the token whose holders may vote.
	GovernanceAsset domain.AssetID

	// BasePrice and Slope parameterize the bonding curve, in micro-units.
	BasePrice uint64
	Slope     uint64

	// LegacyCounterMode keeps the pre-token counter-only marketplace and
	// retirement behavior for backward compatibility.
	LegacyCounterMode bool

	RedisURL     string
	PostgresURL  string
	KafkaBrokers []string
	KafkaTopic   string
}

// FromEnv builds a Server config from environment variables so main stays
// lean. Defaults suit local development; production deployments override.
func FromEnv() Server {
	return Server{
		Addr:              envStr("CARBONX_ADDR", ":8080"),
		JWTSigningKey:     envStr("CARBONX_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		Admin:             domain.Address(envStr("CARBONX_ADMIN", "admin-dev")),
		ContractAddress:   domain.Address(envStr("CARBONX_CONTRACT_ADDRESS", "carbonx-dev")),
		VoteQuorum:        envUint("CARBONX_VOTE_QUORUM", 5),
		GovernanceAsset:   domain.AssetID(envUint("CARBONX_GOVERNANCE_ASSET", 1008)),
		BasePrice:         envUint("CARBONX_BASE_PRICE", 100_000),
		Slope:             envUint("CARBONX_SLOPE", 1),
		LegacyCounterMode: os.Getenv("CARBONX_LEGACY_COUNTER_MODE") == "true",
		RedisURL:          os.Getenv("CARBONX_REDIS_URL"),
		PostgresURL:       os.Getenv("CARBONX_POSTGRES_URL"),
		KafkaBrokers:      envList("CARBONX_KAFKA_BROKERS"),
		KafkaTopic:        envStr("CARBONX_KAFKA_TOPIC", "carbonx.audit"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
