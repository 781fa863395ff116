package entity

// Store is a merchant storefront as exposed by the remote maitriPOS API.
// The gateway only ever reads stores; configuration lives server-side.
type Store struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Slug     string        `json:"slug"`
	Currency string        `json:"currency,omitempty"`
	Branding StoreBranding `json:"branding,omitempty"`
}

// StoreBranding holds the public presentation settings of a store
type StoreBranding struct {
	LogoURL      string `json:"logo_url,omitempty"`
	TagLine      string `json:"tag_line,omitempty"`
	PrimaryColor string `json:"primary_color,omitempty"`
}
