package utils

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/hex"
)

// GenerateIdentity mints a fresh caller identity for the harness: the hex of
// a new ECDSA private key. Signature verification against it is the hosting
// ledger's job; the platform only needs the identity string.
func GenerateIdentity() string {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		panic(err)
	}

	privateKeyBytes := privateKey.D.Bytes()
	return hex.EncodeToString(privateKeyBytes)
}
