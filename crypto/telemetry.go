package crypto

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/Sethuraman/misk/crypto"

var (
	tracer = otel.Tracer(instrumentationName)
	meter  = otel.Meter(instrumentationName)

	keysLoadedCounter      metric.Int64Counter
	obsoleteKeyCounter     metric.Int64Counter
	contextMismatchCounter metric.Int64Counter
)

func init() {
	// The global meter never errors for counter creation; failures only
	// occur in exotic custom providers, in which case a no-op is fine.
	keysLoadedCounter, _ = meter.Int64Counter("crypto.keys_loaded",
		metric.WithDescription("Keys materialized into registries during Load."))
	obsoleteKeyCounter, _ = meter.Int64Counter("crypto.obsolete_key_format",
		metric.WithDescription("Keys decrypted via the pre-envelope master-key fallback."))
	contextMismatchCounter, _ = meter.Int64Counter("crypto.context_mismatch",
		metric.WithDescription("Decrypt calls rejected for a wrong encryption context."))
}
