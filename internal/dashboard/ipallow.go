package dashboard

import (
	"net"
	"net/http"
)

// IPAllowList restricts access to requests whose remote address falls
// within one of the configured CIDR blocks, a lighter-weight gate for
// scrape-style endpoints than full operator auth.
type IPAllowList struct {
	nets []*net.IPNet
}

// NewIPAllowList parses cidrs, returning an error for the first entry
// that fails to parse.
func NewIPAllowList(cidrs []string) (*IPAllowList, error) {
	var nets []*net.IPNet
	for _, c := range cidrs {
		_, ipnet, err := net.ParseCIDR(c)
		if err != nil {
			return nil, err
		}
		nets = append(nets, ipnet)
	}
	return &IPAllowList{nets: nets}, nil
}

func (a *IPAllowList) allowed(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	for _, n := range a.nets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}

// Middleware rejects requests from outside the allow-list with 403.
func (a *IPAllowList) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.allowed(r.RemoteAddr) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
