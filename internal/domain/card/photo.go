package card

import (
	"net/netip"
	"net/url"
	"strings"
)

// ValidatePhotoURL принимает пустую строку или абсолютный http(s) URL.
// Хосты loopback, частных и link-local сетей отклоняются: фото загружает
// браузер на стороне сервера.
func ValidatePhotoURL(raw string) error {
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return invalid("photo url: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalid("photo url must be an absolute http(s) url")
	}
	if u.User != nil {
		return invalid("photo url must not carry credentials")
	}

	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	if host == "" {
		return invalid("photo url has no host")
	}
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return invalid("photo url host %q is not public", host)
	}

	if addr, err := netip.ParseAddr(host); err == nil {
		addr = addr.Unmap()
		if addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() ||
			addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast() || addr.IsMulticast() {
			return invalid("photo url host %q is not public", host)
		}
	}
	return nil
}
