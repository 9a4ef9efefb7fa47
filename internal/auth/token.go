package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	defaultSecretService = "daybook"
	defaultTokenAccount  = "backend_token"
	defaultDBKeyAccount  = "db_key"
)

var (
	keyringGet    = keyring.Get
	keyringSet    = keyring.Set
	keyringDelete = keyring.Delete
)

// LoadToken loads the backend access token.
//
// Order of precedence:
// 1) DAYBOOK_TOKEN environment variable.
// 2) System credential store item referenced by service/account.
func LoadToken() (string, error) {
	if token := strings.TrimSpace(os.Getenv("DAYBOOK_TOKEN")); token != "" {
		return token, nil
	}

	token, err := loadFromKeyring(tokenAccount())
	if err != nil {
		return "", err
	}

	if token == "" {
		return "", errors.New("backend token is empty")
	}

	return token, nil
}

// SaveToken stores the backend token in the system credential store.
func SaveToken(token string) error {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return errors.New("backend token cannot be empty")
	}

	service := secretService()
	account := tokenAccount()

	if err := keyringSet(service, account, trimmed); err != nil {
		return fmt.Errorf(
			"failed to store keyring item service=%q account=%q: %w",
			service,
			account,
			err,
		)
	}

	return nil
}

// ClearToken removes the backend token from the credential store. A missing
// item is not an error.
func ClearToken() error {
	err := keyringDelete(secretService(), tokenAccount())
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete keyring token item: %w", err)
	}
	return nil
}

// LoadDBKey loads the sqlcipher key for the local device store.
func LoadDBKey() (string, error) {
	return loadFromKeyring(defaultDBKeyAccount)
}

// SaveDBKey stores the sqlcipher key in the system credential store.
func SaveDBKey(key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return errors.New("db key cannot be empty")
	}

	service := secretService()
	if err := keyringSet(service, defaultDBKeyAccount, trimmed); err != nil {
		return fmt.Errorf(
			"failed to store keyring item service=%q account=%q: %w",
			service,
			defaultDBKeyAccount,
			err,
		)
	}
	return nil
}

func loadFromKeyring(account string) (string, error) {
	service := secretService()

	secret, err := keyringGet(service, account)
	if err != nil {
		return "", fmt.Errorf(
			"failed to read keyring item service=%q account=%q: %w",
			service,
			account,
			err,
		)
	}

	return strings.TrimSpace(secret), nil
}

func secretService() string {
	return envOrDefault("DAYBOOK_KEYCHAIN_SERVICE", defaultSecretService)
}

func tokenAccount() string {
	return envOrDefault("DAYBOOK_KEYCHAIN_ACCOUNT", defaultTokenAccount)
}

func envOrDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
