package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/T69Chichass/TaxerPay-Backend/internal/auth"
	"github.com/T69Chichass/TaxerPay-Backend/internal/model"
)

func newAuthMiddleware(ttl time.Duration) (func(http.Handler) http.Handler, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret", ttl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Auth(AuthConfig{Logger: logger, Tokens: tokens}), tokens
}

func TestAuthMiddleware(t *testing.T) {
	mw, tokens := newAuthMiddleware(time.Hour)

	principal := &model.Principal{ID: "01ABC", Kind: model.KindFarmer, NaturalKey: "ABCDE1234F"}
	validToken, err := tokens.Issue(principal)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	expiredManager := auth.NewTokenManager("test-secret", -time.Minute)
	expiredToken, err := expiredManager.Issue(principal)
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}

	foreignManager := auth.NewTokenManager("other-secret", time.Hour)
	foreignToken, err := foreignManager.Issue(principal)
	if err != nil {
		t.Fatalf("issue foreign token: %v", err)
	}

	var gotClaims *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = auth.ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid", "Bearer " + validToken, http.StatusOK},
		{"missing_header", "", http.StatusUnauthorized},
		{"wrong_scheme", "Basic " + validToken, http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"expired", "Bearer " + expiredToken, http.StatusUnauthorized},
		{"wrong_secret", "Bearer " + foreignToken, http.StatusUnauthorized},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gotClaims = nil

			req := httptest.NewRequest(http.MethodGet, "/api/farmer/profile", nil)
			if test.authHeader != "" {
				req.Header.Set("Authorization", test.authHeader)
			}
			rec := httptest.NewRecorder()

			mw(next).ServeHTTP(rec, req)

			if rec.Code != test.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, test.wantStatus)
			}
			if test.wantStatus == http.StatusOK {
				if gotClaims == nil || gotClaims.SubjectID != "01ABC" {
					t.Fatalf("claims not injected: %+v", gotClaims)
				}
				if gotClaims.Kind != "farmer" {
					t.Fatalf("kind = %q", gotClaims.Kind)
				}
			} else {
				if gotClaims != nil {
					t.Fatal("next handler ran on rejected request")
				}
				// All failure modes answer with the same body.
				if body := rec.Body.String(); body != `{"error":"Invalid or expired token","code":"UNAUTHORIZED"}` {
					t.Fatalf("unexpected 401 body: %s", body)
				}
			}
		})
	}
}
