package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// ListRoles retrieves the role reference list used to populate role
// selection. A scoped client filters by its company; an unscoped one
// omits the parameter and sees every company's roles.
func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	query := url.Values{}
	if c.Scoped() {
		query.Set("empresaId", strconv.FormatInt(c.CompanyID, 10))
	}

	var roles []Role
	if err := c.doJSONRequest(ctx, http.MethodGet, "/roles", query, nil, &roles); err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	return roles, nil
}
