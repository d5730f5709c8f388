package hash

// FNV-1a 32-bit parameters.
const (
	FNVOffset32 uint32 = 2166136261
	FNVPrime32  uint32 = 16777619
)

// FNV1a computes the 32-bit FNV-1a hash of s.
func FNV1a(s string) uint32 {
	return FNV1aContinue(FNVOffset32, s)
}

// FNV1aContinue folds s into an existing FNV-1a state.
//
// FNV1aContinue(FNV1a(a), b) == FNV1a(a+b), which lets derived keys extend a
// parent hash without rehashing the shared prefix.
func FNV1aContinue(h uint32, s string) uint32 {
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= FNVPrime32
	}

	return h
}
