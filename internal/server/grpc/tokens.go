package grpc

import (
	"context"
	"net/http"
	"strings"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"google.golang.org/grpc/metadata"
)

// accessToken finds the caller's access token in the request metadata. It
// looks at the "accesstoken" key, then the cookie header, then a (Bearer)
// authorization header.
func accessToken(ctx context.Context) string {
	return token(ctx, common.AccessTokenHeaderName, common.AccessTokenCookieName, true)
}

// refreshToken is accessToken for the refresh token; it never reads the
// authorization header.
func refreshToken(ctx context.Context) string {
	return token(ctx, common.RefreshTokenHeaderName, common.RefreshTokenCookieName, false)
}

func token(ctx context.Context, key, cookie string, authorization bool) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if v := first(md, key); v != "" {
		return v
	}
	for _, line := range md.Get(common.CookieHeaderName) {
		cookies, err := http.ParseCookie(line)
		if err != nil {
			continue
		}
		for _, c := range cookies {
			if c.Name == cookie && c.Value != "" {
				return c.Value
			}
		}
	}
	if authorization {
		v := first(md, common.AuthorizationHeader)
		if after, found := strings.CutPrefix(v, "Bearer "); found {
			return strings.TrimSpace(after)
		}
		return v
	}
	return ""
}

func first(md metadata.MD, key string) string {
	for _, v := range md.Get(key) {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
