package fileguard

import (
	"github.com/safehold-dev/safehold/pkg/serialize"
)

// ProtectedStore serializes value to path under the protection
// protocol: if path already holds data, its prior content ends up in a
// backup whenever the stored bytes differ. Returns the path written.
func (g *Guard) ProtectedStore(value interface{}, path string, s serialize.Serializer) (string, error) {
	err := g.Protect(path, func(p string) error {
		return s.Store(value, p)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}
