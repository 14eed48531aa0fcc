// Package common contains shared constants, sentinel errors and small
// helpers used by both the SnowballR server and its client.
package common

// Metadata keys carrying the session tokens. gRPC lower-cases metadata keys,
// so the camel-case cookie names are only used inside the cookie header.
const (
	AccessTokenHeaderName  = "accesstoken"
	RefreshTokenHeaderName = "refreshtoken"
	CookieHeaderName       = "cookie"
	AuthorizationHeader    = "authorization"

	AccessTokenCookieName  = "accessToken"
	RefreshTokenCookieName = "refreshToken"
)
