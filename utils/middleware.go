package utils

import (
	"rental-marketplace-server/models"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

const principalContextKey = "principal"

// OptionalAccessToken verifies the Authorization header when one is present
// and stores the claims for GetPrincipal, but never rejects the request.
// Catalog reads are open to anonymous callers yet role-aware.
func OptionalAccessToken(verifier *jwt.Verifier) iris.Handler {
	return func(ctx iris.Context) {
		if token := verifier.RequestToken(ctx); token != "" {
			if verified, err := verifier.VerifyToken([]byte(token)); err == nil {
				claims := new(AccessToken)
				if err := verified.Claims(claims); err == nil {
					ctx.Values().Set(principalContextKey, claims)
				}
			}
		}
		ctx.Next()
	}
}

// GetPrincipal returns the authenticated claims, or nil for anonymous
// requests. Works behind both the required and the optional verifier.
func GetPrincipal(ctx iris.Context) *AccessToken {
	if v := ctx.Values().Get(principalContextKey); v != nil {
		if claims, ok := v.(*AccessToken); ok {
			return claims
		}
	}
	if v := jwt.Get(ctx); v != nil {
		if claims, ok := v.(*AccessToken); ok {
			return claims
		}
	}
	return nil
}

// AdminOnlyMiddleware ensures the requester has the admin role.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != models.RoleAdmin {
		ctx.StopWithJSON(iris.StatusForbidden, iris.Map{"error": "forbidden", "message": "admin access required"})
		return
	}
	ctx.Next()
}

// LandlordOnlyMiddleware ensures the requester may manage listings.
func LandlordOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != models.RoleLandlord && claims.Role != models.RoleAdmin {
		ctx.StopWithJSON(iris.StatusForbidden, iris.Map{"error": "forbidden", "message": "landlord access required"})
		return
	}
	ctx.Next()
}
