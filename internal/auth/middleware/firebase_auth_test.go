package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authctx "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/auth"
)

type stubVerifier struct{}

func (stubVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if idToken != "good" {
		return nil, errors.New("bad signature")
	}
	return &auth.Token{UID: "uid-123", Claims: map[string]interface{}{"email": "a@b.test"}}, nil
}

func newRouter(v TokenVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(FirebaseAuth(v))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, authctx.Owner(c))
	})
	return r
}

func TestFirebaseAuth(t *testing.T) {
	tests := []struct {
		name       string
		verifier   TokenVerifier
		authHeader string
		userHeader string
		wantStatus int
		wantOwner  string
	}{
		{name: "verified token", verifier: stubVerifier{}, authHeader: "Bearer good", userHeader: "ignored", wantStatus: http.StatusOK, wantOwner: "uid-123"},
		{name: "bad token", verifier: stubVerifier{}, authHeader: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "anonymous with header", verifier: stubVerifier{}, userHeader: "dev-user", wantStatus: http.StatusOK, wantOwner: "dev-user"},
		{name: "anonymous", verifier: stubVerifier{}, wantStatus: http.StatusOK, wantOwner: authctx.LocalOwner},
		{name: "disabled", verifier: nil, authHeader: "Bearer anything", wantStatus: http.StatusOK, wantOwner: authctx.LocalOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			if tt.userHeader != "" {
				req.Header.Set(authctx.HeaderUserID, tt.userHeader)
			}
			w := httptest.NewRecorder()
			newRouter(tt.verifier).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantOwner != "" {
				assert.Equal(t, tt.wantOwner, w.Body.String())
			}
		})
	}
}
