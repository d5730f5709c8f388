package stream

// EndianDeclarer is implemented by streams that state whether their content
// must be readable on hosts with a different byte order.
type EndianDeclarer interface {
	IsEndianIndependent() bool
}

// IsEndianIndependent returns the declaration of s, or true when s does not declare one.
func IsEndianIndependent(s any) bool {
	if d, ok := s.(EndianDeclarer); ok {
		return d.IsEndianIndependent()
	}

	return true
}
