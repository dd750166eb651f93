package address

import (
	"context"
	"net/url"

	"github.com/your-org/storefront/internal/infrastructure/backend"
)

// Client manages the signed-in user's addresses on the backend
type Client struct {
	api *backend.Client
}

// NewClient creates an address client
func NewClient(api *backend.Client) *Client {
	return &Client{api: api}
}

// List returns the user's saved addresses
func (c *Client) List(ctx context.Context) ([]Address, error) {
	var out []Address
	if err := c.api.Get(ctx, "/api/addresses", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create saves a new address
func (c *Client) Create(ctx context.Context, f *Form) (*Address, error) {
	var out Address
	if err := c.api.Post(ctx, "/api/addresses", f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update replaces an address
func (c *Client) Update(ctx context.Context, id string, f *Form) (*Address, error) {
	var out Address
	if err := c.api.Put(ctx, "/api/addresses/"+url.PathEscape(id), f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes an address
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.api.Delete(ctx, "/api/addresses/"+url.PathEscape(id))
}

// SetDefault marks an address as the default
func (c *Client) SetDefault(ctx context.Context, id string) (*Address, error) {
	var out Address
	if err := c.api.Patch(ctx, "/api/addresses/"+url.PathEscape(id)+"/default", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
