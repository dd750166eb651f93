package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/infrastructure/backend"
	"github.com/your-org/storefront/internal/pkg/logger"
)

func TestProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/user/profile", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"_id":"u1","name":"Asha","email":"asha@example.com","mobile":"9876543210","preferences":{"language":"en","notifications":{"orders":true}}}`))
		case http.MethodPut:
			var req UpdateProfileRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			json.NewEncoder(w).Encode(Profile{ID: "u1", Name: req.Name})
		}
	}))
	defer srv.Close()

	s := NewService(backend.NewClientWithHTTP(srv.URL, srv.Client(), logger.Discard()))

	p, err := s.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "9876543210", p.Mobile)
	assert.True(t, p.Preferences.Notifications.Orders)

	updated, err := s.UpdateProfile(context.Background(), &UpdateProfileRequest{Name: "Asha R"})
	require.NoError(t, err)
	assert.Equal(t, "Asha R", updated.Name)
}
