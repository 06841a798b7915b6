package core

import "net/netip"

// PolicyDecision is the outcome of evaluating a peer address against the
// LAN-only setting.
type PolicyDecision struct {
	Allowed bool
	Reason  string
}

// EvaluateAddr decides whether a peer address may be contacted. With
// LAN-only off everything is allowed. With it on, only loopback, link-local
// and private-range addresses pass; anything unparseable is denied.
func EvaluateAddr(addr string, lanOnly bool) PolicyDecision {
	if !lanOnly {
		return PolicyDecision{Allowed: true}
	}
	ip, err := netip.ParseAddr(addr)
	if err != nil {
		ap, err2 := netip.ParseAddrPort(addr)
		if err2 != nil {
			return PolicyDecision{Reason: "unrecognized address"}
		}
		ip = ap.Addr()
	}
	if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsPrivate() {
		return PolicyDecision{Allowed: true}
	}
	return PolicyDecision{Reason: "public address blocked in LAN-only mode"}
}
