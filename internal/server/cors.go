// internal/server/cors.go
package server

// CORSResolver implements the fixed-allow-list policy: a known Origin is
// echoed back, anything else (including no Origin at all) gets the first
// configured origin. The request is never blocked at the edge; the browser
// enforces the mismatch on the client side.
type CORSResolver struct {
	allowed  map[string]bool
	fallback string
}

func NewCORSResolver(origins []string) *CORSResolver {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &CORSResolver{
		allowed:  allowed,
		fallback: origins[0],
	}
}

func (c *CORSResolver) Resolve(requestOrigin string) string {
	if c.allowed[requestOrigin] {
		return requestOrigin
	}
	return c.fallback
}
