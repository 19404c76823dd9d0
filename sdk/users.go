package sdk

import (
	"context"
	"fmt"
	"net/http"
)

// ListUsers retrieves users, optionally filtered and paginated.
// A scoped client lists only its own company's users; an unscoped
// (superadmin) client lists users across all companies.
//
// The user endpoints return a plain array; the result is wrapped in a
// single-page Page so callers treat every collection uniformly.
func (c *Client) ListUsers(ctx context.Context, q ListQuery) (Page[User], error) {
	path := "/admin/usuarios"
	if c.Scoped() {
		path = fmt.Sprintf("/admin/usuarios/empresa/%d", c.CompanyID)
	}

	var users []User
	if err := c.doJSONRequest(ctx, http.MethodGet, path, q.values(), nil, &users); err != nil {
		return Page[User]{}, fmt.Errorf("failed to list users: %w", err)
	}

	page := q.Page
	if page < 1 {
		page = 1
	}

	return Page[User]{
		Items:         users,
		Page:          page,
		Size:          len(users),
		TotalElements: len(users),
		TotalPages:    1,
	}, nil
}

// CreateUser creates a new user in the client's company scope.
// The payload is validated locally first; a zero-role payload never
// reaches the network.
func (c *Client) CreateUser(ctx context.Context, payload UserPayload) (*User, error) {
	payload.CompanyID = c.CompanyID
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	var user User
	if err := c.doJSONRequest(ctx, http.MethodPost, "/admin/usuarios", nil, &payload, &user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// UpdateUser updates an existing user. Blank optional fields are omitted
// from the wire and left unchanged server-side; in particular a blank
// password never overwrites the stored credential.
func (c *Client) UpdateUser(ctx context.Context, id int64, payload UserPayload) (*User, error) {
	// Tenant scope is immutable; never send it on update.
	payload.CompanyID = 0
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/admin/usuarios/%d", id)

	var user User
	if err := c.doJSONRequest(ctx, http.MethodPut, path, nil, &payload, &user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &user, nil
}

// DeleteUser permanently removes a user.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/admin/usuarios/%d", id)

	if err := c.doJSONRequest(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

// SetUserActive activates or deactivates a user through the dedicated
// lifecycle endpoints. Activation is a privileged transition distinct
// from attribute edits, hence no generic PATCH.
func (c *Client) SetUserActive(ctx context.Context, id int64, active bool) error {
	action := "desactivar"
	if active {
		action = "activar"
	}
	path := fmt.Sprintf("/admin/usuarios/%d/%s", id, action)

	if err := c.doJSONRequest(ctx, http.MethodPatch, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to %s user: %w", action, err)
	}

	return nil
}
