package utils

import (
	"bytes"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/openpgp"
	"golang.org/x/crypto/openpgp/armor"
	"golang.org/x/crypto/openpgp/packet"
)

// EncryptWithPGP шифрует содержимое документа публичным ключом.
// Документы попадают в объектное хранилище только в зашифрованном виде.
func EncryptWithPGP(data []byte, publicKey string) ([]byte, error) {
	// Декодируем публичный ключ
	block, err := armor.Decode(strings.NewReader(publicKey))
	if err != nil {
		return nil, fmt.Errorf("failed to decode public key: %v", err)
	}

	entity, err := openpgp.ReadEntity(packet.NewReader(block.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to read entity: %v", err)
	}

	var encryptedBuf bytes.Buffer
	armoredWriter, err := armor.Encode(&encryptedBuf, "PGP MESSAGE", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create armored writer: %v", err)
	}

	// Шифруем данные
	plaintext, err := openpgp.Encrypt(armoredWriter, []*openpgp.Entity{entity}, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypt writer: %v", err)
	}

	if _, err = plaintext.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write data: %v", err)
	}

	if err = plaintext.Close(); err != nil {
		return nil, fmt.Errorf("failed to close plaintext writer: %v", err)
	}

	if err = armoredWriter.Close(); err != nil {
		return nil, fmt.Errorf("failed to close armored writer: %v", err)
	}

	return encryptedBuf.Bytes(), nil
}

// DecryptWithPGP расшифровывает содержимое документа приватным ключом
func DecryptWithPGP(encryptedData []byte, privateKey string) ([]byte, error) {
	// Декодируем приватный ключ
	block, err := armor.Decode(strings.NewReader(privateKey))
	if err != nil {
		return nil, fmt.Errorf("failed to decode private key: %v", err)
	}

	entity, err := openpgp.ReadEntity(packet.NewReader(block.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to read entity: %v", err)
	}

	keyRing := openpgp.EntityList{entity}

	encryptedBlock, err := armor.Decode(bytes.NewReader(encryptedData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode encrypted data: %v", err)
	}

	// Расшифровываем данные
	md, err := openpgp.ReadMessage(encryptedBlock.Body, keyRing, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %v", err)
	}

	decryptedData, err := io.ReadAll(md.UnverifiedBody)
	if err != nil {
		return nil, fmt.Errorf("failed to read decrypted data: %v", err)
	}

	return decryptedData, nil
}

// GenerateHMAC создает HMAC для данных.
// Токены восстановления пароля хранятся в базе только в таком виде.
func GenerateHMAC(data string, key []byte) string {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// ValidateHMAC проверяет HMAC
func ValidateHMAC(data string, signature string, key []byte) bool {
	expected := GenerateHMAC(data, key)
	return hmac.Equal([]byte(signature), []byte(expected))
}

// GenerateSecureToken генерирует безопасный токен
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %v", err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
