package server

import "github.com/mindstorm38/netcrab/common/net"

// RouteKind is the two ways a matched route resolves the link address a
// driver must hand a frame to: Direct hands the packet's own destination
// straight to the link, Indirect hands a configured next-hop IP instead.
type RouteKind int

const (
	Direct RouteKind = iota
	Indirect
)

type route[A net.Masker[A]] struct {
	prefix  net.IPPrefix[A]
	iface   int
	kind    RouteKind
	nextHop A
}

// IpRoutes is an ordered routing table over address type A: an
// insertion-ordered list of specific routes plus one optional default.
// Fetch performs a single, non-recursive lookup — this follows the
// routing table's own description of Direct/Indirect rather than the
// older recursive next-hop chase found in some reference
// implementations of this system, since that recursion has no observable
// effect once Indirect always resolves to a configured, fixed next-hop
// IP instead of chaining through further routes.
type IpRoutes[A net.Masker[A]] struct {
	routes       []route[A]
	sortedByLen  bool
	hasDefault   bool
	defaultIface int
	defaultKind  RouteKind
	defaultHop   A
}

// NewIpRoutes returns an empty routing table.
func NewIpRoutes[A net.Masker[A]]() *IpRoutes[A] {
	return &IpRoutes[A]{}
}

// AddRoute appends a specific route. Routes are matched in insertion
// order unless SortByPrefixLength has been called, in which case the
// table is kept sorted longest-prefix-first instead.
func (r *IpRoutes[A]) AddRoute(prefix net.IPPrefix[A], iface int, kind RouteKind, nextHop A) {
	r.routes = append(r.routes, route[A]{prefix: prefix, iface: iface, kind: kind, nextHop: nextHop})
	if r.sortedByLen {
		r.resort()
	}
}

// SetDefaultRoute installs (or replaces) the default route used when no
// specific route matches.
func (r *IpRoutes[A]) SetDefaultRoute(iface int, kind RouteKind, nextHop A) {
	r.hasDefault = true
	r.defaultIface = iface
	r.defaultKind = kind
	r.defaultHop = nextHop
}

// SortByPrefixLength switches this table to longest-prefix-match
// semantics: from this call on, the specific-routes list is kept sorted
// by descending prefix length instead of insertion order. This is an
// opt-in escape hatch — the table's default behavior intentionally
// preserves insertion-order matching.
func (r *IpRoutes[A]) SortByPrefixLength() {
	r.sortedByLen = true
	r.resort()
}

func (r *IpRoutes[A]) resort() {
	// Stable insertion sort keeps routes of equal prefix length in their
	// original relative order, which matters when two routes of the same
	// length could both match.
	for i := 1; i < len(r.routes); i++ {
		for j := i; j > 0 && r.routes[j].prefix.PrefixLen() > r.routes[j-1].prefix.PrefixLen(); j-- {
			r.routes[j], r.routes[j-1] = r.routes[j-1], r.routes[j]
		}
	}
}

// Fetch returns the interface index and link address to use for a packet
// addressed to ip: the first specific route whose prefix matches, else
// the default route, else ok=false.
func (r *IpRoutes[A]) Fetch(ip A) (iface int, linkAddr A, ok bool) {
	for _, rt := range r.routes {
		if rt.prefix.Matches(ip) {
			if rt.kind == Indirect {
				return rt.iface, rt.nextHop, true
			}
			return rt.iface, ip, true
		}
	}
	if r.hasDefault {
		if r.defaultKind == Indirect {
			return r.defaultIface, r.defaultHop, true
		}
		return r.defaultIface, ip, true
	}
	var zero A
	return 0, zero, false
}
