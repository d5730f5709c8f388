// Package tag defines Key, the name of an entry inside a tagged data container.
//
// A Key holds a short inline name of at most MaxNameLength bytes together with
// the 32-bit FNV-1a hash of that name. Longer names are truncated on
// construction, and the hash always covers exactly the stored bytes, so a key
// derived by appending suffixes is identical to one built from the full name:
//
//	tag.New("Ent").AppendUint(1) == tag.New("Ent1")
package tag

import (
	"strconv"

	"github.com/arloliu/tagdata/internal/hash"
)

// MaxNameLength is the maximum number of name bytes a Key stores.
const MaxNameLength = 254

// Key identifies an entry. The zero value is the empty key.
type Key struct {
	hash uint32
	name string
}

// New creates a key from name, truncating it to MaxNameLength bytes.
func New(name string) Key {
	name = truncate(name, MaxNameLength)

	return Key{hash: hash.FNV1a(name), name: name}
}

// WithHash creates a key from a stored hash and name, as found in a hashed key table.
// The hash is trusted as-is.
func WithHash(h uint32, name string) Key {
	return Key{hash: h, name: truncate(name, MaxNameLength)}
}

// Name returns the stored name bytes as a string.
func (k Key) Name() string {
	return k.name
}

// Hash returns the FNV-1a hash of the stored name.
func (k Key) Hash() uint32 {
	return k.hash
}

// Len returns the stored name length in bytes.
func (k Key) Len() int {
	return len(k.name)
}

// IsZero reports whether k is the empty key.
func (k Key) IsZero() bool {
	return k.name == ""
}

// Equal reports whether k and other name the same entry. Only names are compared.
func (k Key) Equal(other Key) bool {
	return k.name == other.name
}

// Append derives a child key by appending suffix, extending the hash incrementally.
// Bytes that do not fit into MaxNameLength are dropped.
func (k Key) Append(suffix string) Key {
	suffix = truncate(suffix, MaxNameLength-len(k.name))
	if suffix == "" {
		return k
	}

	return Key{
		hash: hash.FNV1aContinue(k.hash, suffix),
		name: k.name + suffix,
	}
}

// AppendUint derives a child key by appending the decimal text of n.
func (k Key) AppendUint(n uint64) Key {
	return k.Append(strconv.FormatUint(n, 10))
}

// String implements fmt.Stringer.
func (k Key) String() string {
	return k.name
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) > n {
		return s[:n]
	}

	return s
}
