package scanner

import (
	"strings"

	"github.com/google/uuid"
)

// NamespaceMediaIdentity is the UUID namespace for media identities, derived
// from the URL namespace and "genmeta/media-identity/v1".
var NamespaceMediaIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("genmeta/media-identity/v1"))

// MediaID returns the deterministic UUID v5 for a scanner path. Paths are
// compared case-insensitively and without the leading "./", so
// "./Outputs/Cat.PNG" and "outputs/cat.png" share an identity.
func MediaID(path string) uuid.UUID {
	return uuid.NewSHA1(NamespaceMediaIdentity, []byte(normalizePath(path)))
}

func normalizePath(path string) string {
	normalized := strings.ToLower(strings.ReplaceAll(path, "\\", "/"))
	return strings.TrimPrefix(normalized, "./")
}
