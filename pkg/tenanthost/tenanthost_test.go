package tenanthost

import "testing"

func TestResolve(t *testing.T) {
	r := NewResolver("localhost")

	cases := []struct {
		host string
		want string
	}{
		{"localhost", ""},
		{"localhost:5173", ""},
		{"shop1.localhost", "shop1"},
		{"shop1.localhost:5173", "shop1"},
		{"shop1.maitripos.com", "shop1"},
		{"maitripos.com", ""},
		{"maitripos.com:443", ""},
		{"", ""},
		{":8080", ""},
		{".localhost", ""},
		{"SHOP1.Localhost", "shop1"},
		{"a.b.maitripos.com", "a"},
	}

	for _, tc := range cases {
		if got := r.Resolve(tc.host); got != tc.want {
			t.Errorf("Resolve(%q) = %q, want %q", tc.host, got, tc.want)
		}
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	r := NewResolver("")

	for _, host := range []string{"localhost", "shop1.localhost", "weird..host", "..", "a:b:c"} {
		first := r.Resolve(host)
		for i := 0; i < 3; i++ {
			if got := r.Resolve(host); got != first {
				t.Fatalf("Resolve(%q) not deterministic: %q then %q", host, first, got)
			}
		}
	}
}

func TestStorefrontURL(t *testing.T) {
	r := NewResolver("localhost")

	if got := r.StorefrontURL("shop1", "maitripos.com"); got != "https://shop1.maitripos.com" {
		t.Errorf("StorefrontURL = %q", got)
	}
	if got := r.StorefrontURL("shop1", "localhost:5173"); got != "https://shop1.localhost" {
		t.Errorf("StorefrontURL with port = %q", got)
	}
	if got := r.StorefrontURL("", "maitripos.com"); got != "" {
		t.Errorf("StorefrontURL with empty slug = %q", got)
	}
}
