package address

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/infrastructure/backend"
	"github.com/your-org/storefront/internal/pkg/logger"
)

func validForm() *Form {
	return &Form{
		FullName:     " Asha Rao ",
		Phone:        "9876543210",
		Pincode:      "560001",
		AddressLine1: "12 MG Road",
		City:         "Bengaluru",
		State:        "Karnataka",
	}
}

func TestInitialSelection(t *testing.T) {
	assert.Equal(t, "", InitialSelection(nil))
	assert.Equal(t, "a", InitialSelection([]Address{{ID: "a"}, {ID: "b"}}))
	assert.Equal(t, "b", InitialSelection([]Address{{ID: "a"}, {ID: "b", IsDefault: true}}))
}

func TestFormValidator(t *testing.T) {
	v := NewFormValidator()

	f := validForm()
	require.NoError(t, v.Validate(f))
	assert.Equal(t, "Asha Rao", f.FullName)
	assert.Equal(t, TypeHome, f.AddressType)

	bad := validForm()
	bad.Phone = "12345"
	bad.Pincode = "56000A"
	bad.AddressType = "Castle"
	err := v.Validate(bad)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "phone")
	assert.Contains(t, verr.Fields, "pincode")
	assert.Contains(t, verr.Fields, "addressType")
	assert.NotContains(t, verr.Fields, "fullName")
}

func TestClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/addresses":
			w.Write([]byte(`[{"_id":"a1","fullName":"Asha","isDefault":true},{"_id":"a2","fullName":"Ravi"}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/api/addresses":
			var f Form
			require.NoError(t, json.NewDecoder(r.Body).Decode(&f))
			json.NewEncoder(w).Encode(Address{ID: "a3", FullName: f.FullName})
		case r.Method == http.MethodPatch && r.URL.Path == "/api/addresses/a2/default":
			w.Write([]byte(`{"_id":"a2","isDefault":true}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/api/addresses/a2":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(backend.NewClientWithHTTP(srv.URL, srv.Client(), logger.Discard()))
	ctx := context.Background()

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a1", InitialSelection(list))

	created, err := c.Create(ctx, validForm())
	require.NoError(t, err)
	assert.Equal(t, "a3", created.ID)

	def, err := c.SetDefault(ctx, "a2")
	require.NoError(t, err)
	assert.True(t, def.IsDefault)

	assert.NoError(t, c.Delete(ctx, "a2"))

	_, err = c.Update(ctx, "zz", validForm())
	assert.True(t, backend.IsNotFound(err))
}
