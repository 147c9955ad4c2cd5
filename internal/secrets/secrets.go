package secrets

import (
	"fmt"

	"github.com/fernet/fernet-go"
)

// Vault encrypts and decrypts short secrets, such as the quote provider
// token, before they touch the database. Values are fernet tokens, so the
// key must be a 32-byte base64 fernet key.
type Vault struct {
	key *fernet.Key
}

// NewVault creates a Vault from a base64-encoded fernet key.
func NewVault(encodedKey string) (*Vault, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("invalid secrets key: %w", err)
	}
	return &Vault{key: key}, nil
}

// Encrypt seals a plaintext secret into a fernet token.
func (v *Vault) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), v.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return string(token), nil
}

// Decrypt opens a fernet token produced by Encrypt. Tokens do not expire;
// the stored provider token stays valid until replaced.
func (v *Vault) Decrypt(token string) (string, error) {
	msg := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{v.key})
	if msg == nil {
		return "", fmt.Errorf("failed to decrypt secret: token invalid or wrong key")
	}
	return string(msg), nil
}
