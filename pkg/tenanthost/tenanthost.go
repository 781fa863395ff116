package tenanthost

import "strings"

// DefaultDevRoot is the bare development host that carries no store slug.
const DefaultDevRoot = "localhost"

// Resolver derives a store slug from a request host name. Resolution is a
// pure string computation: it never does network lookups and never fails.
type Resolver struct {
	devRoot string
}

// NewResolver creates a resolver rooted at the given development host
// (e.g. "localhost"). An empty devRoot falls back to DefaultDevRoot.
func NewResolver(devRoot string) *Resolver {
	if devRoot == "" {
		devRoot = DefaultDevRoot
	}
	return &Resolver{devRoot: strings.ToLower(devRoot)}
}

// Resolve returns the store slug encoded in host, or "" when the host is the
// operator/base site. Rules, in order:
//
//  1. the bare dev root itself carries no slug
//  2. "<slug>.<devroot>" resolves to slug
//  3. any host with three or more labels resolves to its first label
//     (subdomain of the production apex domain)
//  4. everything else (apex domain, empty or malformed host) carries no slug
func (r *Resolver) Resolve(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))

	// Remove port if present
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	if host == "" || host == r.devRoot {
		return ""
	}

	parts := strings.Split(host, ".")

	if strings.HasSuffix(host, "."+r.devRoot) && parts[0] != "" {
		return parts[0]
	}

	if len(parts) >= 3 && parts[0] != "" {
		return parts[0]
	}
	return ""
}

// StorefrontURL builds the public URL for slug under the apex derived from
// host. This is the explicit "open storefront" action, separate from Resolve.
func (r *Resolver) StorefrontURL(slug, host string) string {
	host = strings.TrimSpace(host)
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	if slug == "" || host == "" {
		return ""
	}
	return "https://" + slug + "." + host
}
