package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxEmail       = "email"

	// HeaderUserID scopes saved projects when no verified token is present.
	HeaderUserID = "X-User-Id"

	// LocalOwner owns records saved by anonymous callers.
	LocalOwner = "local"
)

// UserFirebaseUID extracts the Firebase UID from the Gin context
// This is set by middleware.FirebaseAuth
func UserFirebaseUID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxFirebaseUID))
}

// Owner returns the key saved projects are stored under: the verified
// Firebase UID, else the X-User-Id header, else LocalOwner.
func Owner(c *gin.Context) string {
	if uid := UserFirebaseUID(c); uid != "" {
		return uid
	}
	if uid := strings.TrimSpace(c.GetHeader(HeaderUserID)); uid != "" {
		return uid
	}
	return LocalOwner
}
