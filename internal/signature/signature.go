// Package signature produces the cryptographic proof stamped on a manager's
// decision: an RSA PKCS#1 v1.5 signature of the human-readable decision
// sentence, base64 encoded.
package signature

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"strings"
)

// Signer signs a plaintext decision sentence.
type Signer interface {
	Sign(message string) (string, error)
}

// RSASigner signs with the site's private key.
type RSASigner struct {
	key *rsa.PrivateKey
}

// NewRSASigner parses a PEM private key. Keys coming from env vars carry
// literal "\n" sequences, which are unescaped first.
func NewRSASigner(pemKey string) (*RSASigner, error) {
	pemKey = strings.ReplaceAll(pemKey, `\n`, "\n")
	block, _ := pem.Decode([]byte(pemKey))
	if block == nil {
		return nil, fmt.Errorf("no PEM block in signature key")
	}

	if key, err := x509.ParsePKCS1PrivateKey(block.Bytes); err == nil {
		return &RSASigner{key: key}, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse signature key: %w", err)
	}
	key, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("signature key is not RSA")
	}
	return &RSASigner{key: key}, nil
}

// Sign signs the raw message (no digest: the sentence is short and the
// verifier recomputes it verbatim) and returns base64.
func (s *RSASigner) Sign(message string) (string, error) {
	sig, err := rsa.SignPKCS1v15(rand.Reader, s.key, crypto.Hash(0), []byte(message))
	if err != nil {
		return "", fmt.Errorf("sign decision: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// Verify checks a base64 signature against a message with the public half of
// the key. Used by tests and the verification page backend.
func (s *RSASigner) Verify(message, signature string) error {
	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}
	return rsa.VerifyPKCS1v15(&s.key.PublicKey, crypto.Hash(0), []byte(message), raw)
}
