package bridge

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
)

// VersionFromManifest derives an asset version from the contents of a build
// manifest: the first 16 hex characters of its SHA-256. Any rebuild that
// changes an asset changes the manifest and thus the version.
func VersionFromManifest(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Join(ErrManifest, err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16], nil
}
