package utils

import (
	"bytes"
	"testing"

	"golang.org/x/crypto/openpgp"
	"golang.org/x/crypto/openpgp/armor"
	_ "golang.org/x/crypto/ripemd160" // регистрирует RIPEMD160 для openpgp
)

// testPGPKeyPair генерирует пару ключей в armor-формате для тестов
func testPGPKeyPair(t *testing.T) (publicKey, privateKey string) {
	t.Helper()

	entity, err := openpgp.NewEntity("test", "", "test@example.com", nil)
	if err != nil {
		t.Fatal(err)
	}

	var pub bytes.Buffer
	pubWriter, err := armor.Encode(&pub, openpgp.PublicKeyType, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := entity.Serialize(pubWriter); err != nil {
		t.Fatal(err)
	}
	if err := pubWriter.Close(); err != nil {
		t.Fatal(err)
	}

	var priv bytes.Buffer
	privWriter, err := armor.Encode(&priv, openpgp.PrivateKeyType, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := entity.SerializePrivate(privWriter, nil); err != nil {
		t.Fatal(err)
	}
	if err := privWriter.Close(); err != nil {
		t.Fatal(err)
	}

	return pub.String(), priv.String()
}

func TestPGPRoundTrip(t *testing.T) {
	publicKey, privateKey := testPGPKeyPair(t)
	original := []byte("document content")

	encrypted, err := EncryptWithPGP(original, publicKey)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(encrypted, original) {
		t.Error("encrypted output contains plaintext")
	}

	decrypted, err := DecryptWithPGP(encrypted, privateKey)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decrypted, original) {
		t.Errorf("decrypted = %q, want %q", decrypted, original)
	}
}

func TestDecryptWithPGPBadKey(t *testing.T) {
	if _, err := DecryptWithPGP([]byte("garbage"), "not a key"); err == nil {
		t.Error("expected error for malformed private key")
	}
}

func TestHMACRoundTrip(t *testing.T) {
	key := []byte("test-key")
	signature := GenerateHMAC("payload", key)

	if !ValidateHMAC("payload", signature, key) {
		t.Error("valid signature rejected")
	}
	if ValidateHMAC("tampered", signature, key) {
		t.Error("signature for different payload accepted")
	}
	if ValidateHMAC("payload", signature, []byte("other-key")) {
		t.Error("signature with different key accepted")
	}
}

func TestGenerateSecureToken(t *testing.T) {
	first, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatal(err)
	}
	second, err := GenerateSecureToken(32)
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Error("tokens must not repeat")
	}
}
