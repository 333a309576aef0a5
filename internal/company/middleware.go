package company

import (
	"net"
	"net/http"
	"strings"
)

// Resolver resolves company identifiers from HTTP requests using either headers or subdomains.
type Resolver struct {
	HeaderName     string
	RootDomain     string
	DefaultCompany string
}

// NewResolver returns a resolver configured with the provided header name, root domain, and default company id.
// If headerName is empty, "X-Company-ID" is used.
func NewResolver(headerName, rootDomain, defaultCompany string) *Resolver {
	if headerName == "" {
		headerName = "X-Company-ID"
	}
	return &Resolver{
		HeaderName:     headerName,
		RootDomain:     strings.ToLower(strings.TrimSpace(rootDomain)),
		DefaultCompany: strings.TrimSpace(defaultCompany),
	}
}

// Middleware resolves the company from the request and injects it into the context passed downstream.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	if r == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		companyID := r.Resolve(req)
		if companyID == "" {
			companyID = r.DefaultCompany
		}
		if companyID != "" {
			ctx := With(req.Context(), companyID)
			req = req.WithContext(ctx)
		}
		next.ServeHTTP(w, req)
	})
}

// Resolve attempts to find the company identifier from the configured header or the request subdomain.
func (r *Resolver) Resolve(req *http.Request) string {
	if r == nil || req == nil {
		return ""
	}
	if companyID := strings.TrimSpace(req.Header.Get(r.HeaderName)); companyID != "" {
		return companyID
	}

	host := hostWithoutPort(req.Host)
	if host == "" {
		return ""
	}
	subdomain := r.subdomainFromHost(host)
	return strings.TrimSpace(subdomain)
}

func (r *Resolver) subdomainFromHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return ""
	}

	if r.RootDomain != "" {
		if host == r.RootDomain {
			return ""
		}
		suffix := "." + r.RootDomain
		if strings.HasSuffix(host, suffix) {
			host = strings.TrimSuffix(host, suffix)
		} else {
			return ""
		}
	}

	parts := strings.Split(host, ".")
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func hostWithoutPort(hostport string) string {
	hostport = strings.TrimSpace(hostport)
	if hostport == "" {
		return ""
	}
	if strings.HasPrefix(hostport, "[") {
		if idx := strings.Index(hostport, "]"); idx != -1 {
			host := hostport[1:idx]
			if host != "" {
				return host
			}
		}
	}
	if h, _, err := net.SplitHostPort(hostport); err == nil {
		return h
	}
	if idx := strings.Index(hostport, ":"); idx != -1 && strings.Count(hostport, ":") == 1 {
		return hostport[:idx]
	}
	return hostport
}
