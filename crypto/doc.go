// Package crypto loads KMS-wrapped tink keysets into typed, immutable
// registries and binds every ciphertext to an application-supplied
// encryption context.
//
// At startup, a Loader consumes a list of KeyRecord values, unwraps each one
// through a KMSClient using envelope encryption, and materializes the
// primitive the record's type calls for: AEAD, deterministic AEAD, MAC,
// signer/verifier pairs, or hybrid encrypt/decrypt. The result is a single
// Crypto value holding one registry per primitive kind:
//
//	loader, err := crypto.NewLoader(kmsClient)
//	keys, err := loader.Load(ctx, records)
//	a, err := keys.AEADs.Get("customer-data")
//	ct, err := a.Encrypt(plaintext, crypto.EncryptionContext{"table": "users"})
//
// Loading is all-or-nothing: any undecryptable keyset, duplicate key name or
// unknown key type fails the whole load. After Load returns, registries are
// read-only and safe for unsynchronized concurrent use.
//
// Encrypting with a non-empty EncryptionContext binds the context into the
// ciphertext's associated data; decrypting under any other context fails
// with ErrContextMismatch rather than a generic crypto error. Ciphertexts
// created before context binding existed, via the *WithAssociatedData
// calling convention, still decrypt. Keysets wrapped before envelope
// encryption existed still load, via direct master-key decryption, logging
// the warning "using obsolete key format".
package crypto
