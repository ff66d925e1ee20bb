package crypto

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tink-crypto/tink-go/v2/aead"
	"github.com/tink-crypto/tink-go/v2/daead"
	"github.com/tink-crypto/tink-go/v2/hybrid"
	"github.com/tink-crypto/tink-go/v2/keyset"
	"github.com/tink-crypto/tink-go/v2/mac"
	"github.com/tink-crypto/tink-go/v2/signature"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Crypto aggregates the typed key registries built by a Loader. It is the
// single object handed to consumers at startup; all registries are immutable
// and safe for concurrent lookup.
type Crypto struct {
	AEADs          *Registry[*AEAD]
	DAEADs         *Registry[*DeterministicAEAD]
	MACs           *Registry[*MAC]
	Signers        *Registry[*Signer]
	Verifiers      *Registry[*Verifier]
	HybridEncrypts *Registry[*HybridEncrypt]
	HybridDecrypts *Registry[*HybridDecrypt]
}

// KeyPolicy decides whether a key record may be loaded. It exists for
// deployment-environment gating (e.g. refusing staging keys in production);
// returning an error aborts the whole load.
type KeyPolicy func(record KeyRecord) error

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for load-time warnings. Defaults to
// slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// WithKeyPolicy installs a policy consulted for every record before it is
// decrypted.
func WithKeyPolicy(policy KeyPolicy) Option {
	return func(l *Loader) { l.policy = policy }
}

// Loader materializes typed primitives from wrapped key records. Loading is
// a single synchronous pass; the only network calls are the KMS unwrap calls
// made through the client, and no retries are performed.
type Loader struct {
	client KMSClient
	log    *slog.Logger
	policy KeyPolicy
}

// NewLoader creates a Loader that unwraps key material through client.
func NewLoader(client KMSClient, opts ...Option) (*Loader, error) {
	if client == nil {
		return nil, fmt.Errorf("crypto: NewLoader client is nil")
	}
	l := &Loader{client: client, log: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Load decrypts every record and returns the populated registries. It is
// all-or-nothing: a duplicate name, an undecryptable keyset, an unknown key
// type or a policy rejection returns an error and no partial state.
func (l *Loader) Load(ctx context.Context, records []KeyRecord) (*Crypto, error) {
	ctx, span := tracer.Start(ctx, "crypto.Load",
		trace.WithAttributes(attribute.Int("crypto.key_count", len(records))))
	defer span.End()

	c := &Crypto{
		AEADs:          newRegistry[*AEAD]("aead"),
		DAEADs:         newRegistry[*DeterministicAEAD]("daead"),
		MACs:           newRegistry[*MAC]("mac"),
		Signers:        newRegistry[*Signer]("signer"),
		Verifiers:      newRegistry[*Verifier]("verifier"),
		HybridEncrypts: newRegistry[*HybridEncrypt]("hybrid-encrypt"),
		HybridDecrypts: newRegistry[*HybridDecrypt]("hybrid-decrypt"),
	}

	reader := newEnvelopeReader(ctx, l.client, l.log)
	for _, record := range records {
		if err := l.loadRecord(ctx, reader, c, record); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "key load failed")
			return nil, err
		}
		keysLoadedCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.String("key_type", record.Type.String())))
	}
	return c, nil
}

func (l *Loader) loadRecord(ctx context.Context, reader *envelopeReader, c *Crypto, record KeyRecord) error {
	if l.policy != nil {
		if err := l.policy(record); err != nil {
			return fmt.Errorf("crypto: key %q rejected by policy: %w", record.Name, err)
		}
	}

	var handle *keyset.Handle
	var err error
	if record.Cleartext {
		handle, err = readCleartext(record.Encrypted)
	} else {
		handle, _, err = reader.read(ctx, record.Name, record.Encrypted)
	}
	if err != nil {
		return err
	}

	switch record.Type {
	case KeyTypeAEAD:
		primitive, err := aead.New(handle)
		if err != nil {
			return fmt.Errorf("crypto: key %q: %w", record.Name, err)
		}
		return c.AEADs.add(record.Name, &AEAD{name: record.Name, primitive: primitive})

	case KeyTypeDAEAD:
		primitive, err := daead.New(handle)
		if err != nil {
			return fmt.Errorf("crypto: key %q: %w", record.Name, err)
		}
		return c.DAEADs.add(record.Name, &DeterministicAEAD{name: record.Name, primitive: primitive})

	case KeyTypeMAC:
		primitive, err := mac.New(handle)
		if err != nil {
			return fmt.Errorf("crypto: key %q: %w", record.Name, err)
		}
		return c.MACs.add(record.Name, &MAC{name: record.Name, primitive: primitive})

	case KeyTypeDigitalSignature:
		signer, err := signature.NewSigner(handle)
		if err != nil {
			return fmt.Errorf("crypto: key %q: %w", record.Name, err)
		}
		public, err := handle.Public()
		if err != nil {
			return fmt.Errorf("crypto: key %q: %w", record.Name, err)
		}
		verifier, err := signature.NewVerifier(public)
		if err != nil {
			return fmt.Errorf("crypto: key %q: %w", record.Name, err)
		}
		if err := c.Signers.add(record.Name, &Signer{name: record.Name, primitive: signer}); err != nil {
			return err
		}
		return c.Verifiers.add(record.Name, &Verifier{name: record.Name, primitive: verifier})

	case KeyTypeHybridEncrypt:
		// Public-key-only keyset: encryption capability without decryption.
		primitive, err := hybrid.NewHybridEncrypt(handle)
		if err != nil {
			return fmt.Errorf("crypto: key %q: %w", record.Name, err)
		}
		return c.HybridEncrypts.add(record.Name, &HybridEncrypt{name: record.Name, primitive: primitive})

	case KeyTypeHybridEncryptDecrypt:
		decrypt, err := hybrid.NewHybridDecrypt(handle)
		if err != nil {
			return fmt.Errorf("crypto: key %q: %w", record.Name, err)
		}
		public, err := handle.Public()
		if err != nil {
			return fmt.Errorf("crypto: key %q: %w", record.Name, err)
		}
		encrypt, err := hybrid.NewHybridEncrypt(public)
		if err != nil {
			return fmt.Errorf("crypto: key %q: %w", record.Name, err)
		}
		if err := c.HybridDecrypts.add(record.Name, &HybridDecrypt{name: record.Name, primitive: decrypt}); err != nil {
			return err
		}
		return c.HybridEncrypts.add(record.Name, &HybridEncrypt{name: record.Name, primitive: encrypt})

	default:
		return fmt.Errorf("%w: key %q has type %v", ErrUnknownKeyType, record.Name, record.Type)
	}
}
