package service

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"

	"brewhouse/api"
	"brewhouse/common"
	"brewhouse/service/auth"
)

const (
	userIDContextKey = "user-id"
)

type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

func audienceContains(audience jwt.ClaimStrings, token string) bool {
	for _, v := range audience {
		if v == token {
			return true
		}
	}
	return false
}

func getUserIDContextKey() string {
	return userIDContextKey
}

func extractTokenFromHeader(ctx *gin.Context) (string, error) {
	authHeader := ctx.Request.Header.Get("Authorization")
	if authHeader == "" {
		return "", nil
	}
	authHeaderParts := strings.Fields(authHeader)
	if len(authHeaderParts) != 2 || strings.ToLower(authHeaderParts[0]) != "bearer" {
		return "", errors.New("Authorization header format must be Bearer {token}")
	}
	return authHeaderParts[1], nil
}

func findAccessToken(ctx *gin.Context) string {
	accessToken := ""
	cookie, err := ctx.Cookie(auth.AccessTokenCookieName)
	if err == nil {
		accessToken = cookie
	}
	if accessToken == "" {
		accessToken, _ = extractTokenFromHeader(ctx)
	}
	return accessToken
}

func GenerateTokensAndSetCookies(ctx *gin.Context, user *api.User, secret string) error {
	accessToken, err := auth.GenerateAccessToken(user.Name, user.ID, secret)
	if err != nil {
		return errors.Wrap(err, "failed to generate access token")
	}

	cookieExp := time.Now().Add(auth.CookieExpDuration)
	setTokenCookie(ctx, auth.AccessTokenCookieName, accessToken, cookieExp)

	// We generate here a new refresh token and saving it to the cookie.
	refreshToken, err := auth.GenerateRefreshToken(user.Name, user.ID, secret)
	if err != nil {
		return errors.Wrap(err, "failed to generate refresh token")
	}
	setTokenCookie(ctx, auth.RefreshTokenCookieName, refreshToken, cookieExp)

	return nil
}

func RemoveTokensAndCookies(ctx *gin.Context) {
	// Setting an expired cookie makes the browser drop it.
	setTokenCookie(ctx, auth.AccessTokenCookieName, "", time.Now().Add(-time.Hour))
	setTokenCookie(ctx, auth.RefreshTokenCookieName, "", time.Now().Add(-time.Hour))
}

func setTokenCookie(ctx *gin.Context, name, token string, expiration time.Time) {
	maxAge := int(time.Until(expiration).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	// Http-only helps mitigate the risk of client side script accessing the protected cookie.
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(name, token, maxAge, "/", "", true, true)
}

func parseToken(token, audience, secret string) (*Claims, *jwt.Token, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Name {
			return nil, errors.Errorf("unexpected token signing method=%v, expect %v", t.Header["alg"], jwt.SigningMethodHS256)
		}
		if kid, ok := t.Header["kid"].(string); ok {
			if kid == auth.KeyID {
				return []byte(secret), nil
			}
		}
		return nil, errors.Errorf("unexpected token kid=%v", t.Header["kid"])
	})
	if err == nil && !audienceContains(claims.Audience, audience) {
		err = errors.Errorf("invalid token, audience mismatch, got %q, expected %q", claims.Audience, audience)
	}
	return claims, parsed, err
}

func isExpiredOnly(err error) bool {
	var ve *jwt.ValidationError
	return errors.As(err, &ve) && ve.Errors == jwt.ValidationErrorExpired
}

func JWTMiddleware(server *Service, ctx *gin.Context, secret string) {
	path := ctx.Request.URL.Path
	method := ctx.Request.Method

	if server.defaultAuthSkipper(ctx) {
		ctx.Next()
		return
	}

	// Skip validation for server status and the public catalog.
	if common.HasPrefixes(path, "/api/ping", "/api/catalog") && method == http.MethodGet {
		ctx.Next()
		return
	}

	token := findAccessToken(ctx)
	if token == "" {
		ctx.String(http.StatusUnauthorized, "Missing access token")
		ctx.Abort()
		return
	}

	claims, _, parseErr := parseToken(token, auth.AccessTokenAudienceName, secret)
	generateToken := false
	if parseErr != nil {
		// If expiration error is the only error, we generate new access token and refresh token.
		if !isExpiredOnly(parseErr) {
			ctx.String(http.StatusUnauthorized, "Invalid or expired access token")
			ctx.Abort()
			return
		}
		generateToken = true
	} else if claims.ExpiresAt != nil && time.Until(claims.ExpiresAt.Time) < auth.RefreshThresholdDuration {
		generateToken = true
	}

	// We either have a valid access token or we will attempt to generate new access token and refresh token
	userID, err := strconv.Atoi(claims.Subject)
	if err != nil {
		ctx.String(http.StatusUnauthorized, "Malformed ID in the token.")
		ctx.Abort()
		return
	}

	// Even if there is no error, we still need to make sure the user still exists.
	user, err := server.Store.FindUser(ctx, &api.UserFind{
		ID: &userID,
	})
	if err != nil {
		if common.ErrorCode(err) == common.NotFound {
			ctx.String(http.StatusUnauthorized, fmt.Sprintf("Failed to find user ID: %d", userID))
			ctx.Abort()
			return
		}
		ctx.String(http.StatusInternalServerError, fmt.Sprintf("Server error to find user ID: %d", userID))
		ctx.Abort()
		return
	}

	if generateToken {
		generateTokenFunc := func() (int, string) {
			rc, err := ctx.Cookie(auth.RefreshTokenCookieName)
			if err != nil {
				return http.StatusUnauthorized, "Failed to generate access token. Missing refresh token."
			}

			// Parses token and checks if it's valid.
			if _, refreshToken, err := parseToken(rc, auth.RefreshTokenAudienceName, secret); err != nil || refreshToken == nil || !refreshToken.Valid {
				return http.StatusUnauthorized, "Failed to generate access token. Invalid refresh token."
			}

			if err := GenerateTokensAndSetCookies(ctx, user, secret); err != nil {
				return http.StatusInternalServerError, fmt.Sprintf("Server error to refresh expired token. User Id %d", userID)
			}
			return 0, ""
		}

		// It may happen that we still have a valid access token, but we encounter issue when trying to generate new token
		// In such case, we won't return the error.
		if code, str := generateTokenFunc(); code != 0 && parseErr != nil {
			ctx.String(code, str)
			ctx.Abort()
			return
		}
	}

	// Stores userID into context.
	ctx.Set(getUserIDContextKey(), userID)
	ctx.Next()
}
