package crypto_test

import (
	"context"
	"fmt"

	"github.com/tink-crypto/tink-go/v2/aead"
	"github.com/tink-crypto/tink-go/v2/keyset"

	"github.com/Sethuraman/misk/crypto"
	"github.com/Sethuraman/misk/crypto/cryptotest"
)

func ExampleLoader() {
	// In production the KMS client comes from awskms, gcpkms, azurekv or
	// vault; cryptotest keeps the example self-contained.
	client, err := cryptotest.NewClient()
	if err != nil {
		panic(err)
	}

	// Key records normally arrive from external configuration.
	handle, err := keyset.NewHandle(aead.AES256GCMKeyTemplate())
	if err != nil {
		panic(err)
	}
	material, err := client.WrapKeyset(handle)
	if err != nil {
		panic(err)
	}
	records := []crypto.KeyRecord{
		{Name: "customer-data", Type: crypto.KeyTypeAEAD, Encrypted: material},
	}

	loader, err := crypto.NewLoader(client)
	if err != nil {
		panic(err)
	}
	keys, err := loader.Load(context.Background(), records)
	if err != nil {
		panic(err)
	}

	a, err := keys.AEADs.Get("customer-data")
	if err != nil {
		panic(err)
	}

	ec := crypto.EncryptionContext{"table": "users", "column": "ssn"}
	ciphertext, err := a.Encrypt([]byte("Hello world!"), ec)
	if err != nil {
		panic(err)
	}

	// Decrypting under a different context fails.
	if _, err := a.Decrypt(ciphertext, nil); crypto.IsContextMismatch(err) {
		fmt.Println(err)
	}

	plaintext, err := a.Decrypt(ciphertext, ec)
	if err != nil {
		panic(err)
	}
	fmt.Println(string(plaintext))

	// Output:
	// encryption context doesn't match
	// Hello world!
}

func ExampleRegistry_Get() {
	client, err := cryptotest.NewClient()
	if err != nil {
		panic(err)
	}
	loader, err := crypto.NewLoader(client)
	if err != nil {
		panic(err)
	}
	keys, err := loader.Load(context.Background(), nil)
	if err != nil {
		panic(err)
	}

	_, err = keys.MACs.Get("sessions")
	fmt.Println(crypto.IsKeyNotFound(err))

	// Output:
	// true
}
