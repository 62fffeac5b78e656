package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/olegiv/folio-go/internal/model"
	"github.com/olegiv/folio-go/internal/store"
	"github.com/olegiv/folio-go/internal/testutil"
)

func TestAPIKeyAuth(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	rawKey, prefix, err := model.GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}
	key := &model.APIKey{
		Name:      "test",
		KeyHash:   model.HashAPIKey(rawKey),
		KeyPrefix: prefix,
	}
	if err := store.NewAPIKeyStore(db).Create(context.Background(), key); err != nil {
		t.Fatalf("creating key: %v", err)
	}

	var gotKey *model.APIKey
	handler := APIKeyAuth(db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = GetAPIKey(r)
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid key", "Bearer " + rawKey, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + rawKey, http.StatusUnauthorized},
		{"empty key", "Bearer ", http.StatusUnauthorized},
		{"unknown key", "Bearer not-a-real-key", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotKey = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if gotKey == nil || gotKey.Name != "test" {
					t.Errorf("API key not in context: %+v", gotKey)
				}
			}
		})
	}
}

func TestAPIKeyAuthDeactivatedKey(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	rawKey, prefix, err := model.GenerateAPIKey()
	if err != nil {
		t.Fatalf("GenerateAPIKey: %v", err)
	}
	keys := store.NewAPIKeyStore(db)
	key := &model.APIKey{
		Name:      "revoked",
		KeyHash:   model.HashAPIKey(rawKey),
		KeyPrefix: prefix,
	}
	if err := keys.Create(context.Background(), key); err != nil {
		t.Fatalf("creating key: %v", err)
	}
	if err := keys.Deactivate(context.Background(), key.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}

	handler := APIKeyAuth(db)(okHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+rawKey)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for deactivated key", rr.Code)
	}
}
