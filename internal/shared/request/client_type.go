package request

import "strings"

// ClientType membedakan cara token dikirim: web pakai cookie,
// mobile dan api pakai body/header.
type ClientType string

const (
	ClientWeb    ClientType = "web"
	ClientMobile ClientType = "mobile"
	ClientAPI    ClientType = "api"
)

// ResolveClientType prefers the explicit X-Client-Type header and
// falls back to sniffing the User-Agent.
func ResolveClientType(headerValue, userAgent string) ClientType {
	switch strings.ToLower(strings.TrimSpace(headerValue)) {
	case "web":
		return ClientWeb
	case "mobile":
		return ClientMobile
	case "api":
		return ClientAPI
	}

	if strings.Contains(userAgent, "Mozilla") {
		return ClientWeb
	}
	return ClientAPI
}

func IsWebClient(ct ClientType) bool {
	return ct == ClientWeb
}
