package net

// Masker is implemented by an address type A that can mask itself down to
// a prefix of prefixLen bits, returning another A. IPv4Addr implements
// this; the type parameter leaves room for an IPv6Addr implementation
// without changing IPPrefix itself (IPv6/NDP are out of scope here).
type Masker[A any] interface {
	comparable
	Mask(prefixLen int) A
}

// IPPrefix is an address/prefix-length pair. The invariant
// Address == Address.Mask(PrefixLen) is established by NewIPPrefix and
// never violated afterward, since the fields are unexported.
type IPPrefix[A Masker[A]] struct {
	address   A
	prefixLen int
}

// NewIPPrefix returns the prefix (address masked to prefixLen, prefixLen).
func NewIPPrefix[A Masker[A]](address A, prefixLen int) IPPrefix[A] {
	return IPPrefix[A]{address: address.Mask(prefixLen), prefixLen: prefixLen}
}

// Address returns the prefix's (already-masked) network address.
func (p IPPrefix[A]) Address() A {
	return p.address
}

// PrefixLen returns the prefix length in bits.
func (p IPPrefix[A]) PrefixLen() int {
	return p.prefixLen
}

// Matches reports whether ip falls within this prefix: ip masked to
// PrefixLen equals Address. A /0 prefix matches every address.
func (p IPPrefix[A]) Matches(ip A) bool {
	return ip.Mask(p.prefixLen) == p.address
}
