package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteAddrExtractor(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		want       string
		wantErr    bool
	}{
		{name: "IPv4 with port", remoteAddr: "192.168.1.1:54321", want: "192.168.1.1"},
		{name: "IPv6 with port", remoteAddr: "[2001:db8::1]:8080", want: "2001:db8::1"},
		{name: "bare IPv4", remoteAddr: "10.0.0.7", want: "10.0.0.7"},
		{name: "bracketed IPv6 without port", remoteAddr: "[::1]", want: "::1"},
		{name: "garbage", remoteAddr: "not-an-address", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr

			got, err := (&RemoteAddrExtractor{}).ExtractIP(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes, err := ParseTrustedProxies([]string{"10.0.0.0/8", " 192.168.1.10 ", "", "2001:db8::/32", "10.1.2.3/16"})
	require.NoError(t, err)

	want := []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.168.1.10/32"),
		netip.MustParsePrefix("2001:db8::/32"),
		netip.MustParsePrefix("10.1.0.0/16"),
	}
	assert.Equal(t, want, prefixes)

	_, err = ParseTrustedProxies([]string{"10.0.0.0/8", "proxy.internal"})
	assert.ErrorContains(t, err, "proxy.internal")
}

func TestTrustedProxyConfig_IsTrusted(t *testing.T) {
	cfg := TrustedProxyConfig{
		Enabled: true,
		AllowedCIDRs: []netip.Prefix{
			netip.MustParsePrefix("10.0.0.0/8"),
			netip.MustParsePrefix("2001:db8::/32"),
		},
	}

	assert.True(t, cfg.IsTrusted("10.1.2.3:443"))
	assert.True(t, cfg.IsTrusted("[::ffff:10.1.2.3]:443"))
	assert.True(t, cfg.IsTrusted("[2001:db8::5]:80"))
	assert.False(t, cfg.IsTrusted("203.0.113.9:443"))
	assert.False(t, cfg.IsTrusted("garbage"))
}

func TestTrustedProxyExtractor(t *testing.T) {
	cfg := TrustedProxyConfig{
		Enabled:      true,
		AllowedCIDRs: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	}

	tests := []struct {
		name       string
		config     TrustedProxyConfig
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "trusted proxy uses first X-Forwarded-For entry",
			config:     cfg,
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.2"},
			want:       "203.0.113.5",
		},
		{
			name:       "trusted proxy falls back to X-Real-IP",
			config:     cfg,
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": " 198.51.100.7 "},
			want:       "198.51.100.7",
		},
		{
			name:       "trusted proxy with invalid headers uses peer",
			config:     cfg,
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "unknown", "X-Real-IP": "nope"},
			want:       "10.0.0.1",
		},
		{
			name:       "untrusted sender cannot spoof",
			config:     cfg,
			remoteAddr: "203.0.113.9:5555",
			headers:    map[string]string{"X-Forwarded-For": "1.2.3.4"},
			want:       "203.0.113.9",
		},
		{
			name:       "disabled ignores headers",
			config:     TrustedProxyConfig{AllowedCIDRs: cfg.AllowedCIDRs},
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "1.2.3.4"},
			want:       "10.0.0.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			got, err := NewTrustedProxyExtractor(tt.config).ExtractIP(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewIPExtractor(t *testing.T) {
	assert.IsType(t, &RemoteAddrExtractor{}, NewIPExtractor(TrustedProxyConfig{}))
	assert.IsType(t, &RemoteAddrExtractor{}, NewIPExtractor(TrustedProxyConfig{Enabled: true}))

	extractor := NewIPExtractor(TrustedProxyConfig{
		Enabled:      true,
		AllowedCIDRs: []netip.Prefix{netip.MustParsePrefix("127.0.0.1/32")},
	})
	assert.IsType(t, &TrustedProxyExtractor{}, extractor)
}
