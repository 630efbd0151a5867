package signature

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeyPEM(t *testing.T) string {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	return string(pem.EncodeToMemory(block))
}

func TestSignAndVerify(t *testing.T) {
	signer, err := NewRSASigner(testKeyPEM(t))
	require.NoError(t, err)

	sentence := "Autorisation de publication accordée par J. Dupont le 14/03/2025."
	sig, err := signer.Sign(sentence)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	assert.NoError(t, signer.Verify(sentence, sig))

	// Any change to the sentence invalidates the signature.
	assert.Error(t, signer.Verify("Autorisation de publication refusée par J. Dupont le 14/03/2025.", sig))
	assert.Error(t, signer.Verify(sentence, "bm90LWEtc2lnbmF0dXJl"))
}

func TestNewRSASignerUnescapesNewlines(t *testing.T) {
	escaped := strings.ReplaceAll(testKeyPEM(t), "\n", `\n`)
	_, err := NewRSASigner(escaped)
	assert.NoError(t, err)
}

func TestNewRSASignerRejectsGarbage(t *testing.T) {
	_, err := NewRSASigner("not a key")
	assert.Error(t, err)
}
