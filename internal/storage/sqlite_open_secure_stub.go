//go:build !sqlcipher
// +build !sqlcipher

package storage

import (
	"database/sql"
	"fmt"
)

// openSecureSQLite is the fallback for builds without sqlcipher linked in.
// The device store holds reaction markers, so encryption is mandatory.
func openSecureSQLite(path string, key string) (*sql.DB, error) {
	return nil, fmt.Errorf(
		"the encrypted device store requires a sqlcipher build; rebuild with '-tags sqlcipher'",
	)
}

func secureSQLiteSupported() bool {
	return false
}
