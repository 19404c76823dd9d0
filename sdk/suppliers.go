package sdk

import (
	"context"
	"fmt"
	"net/http"
)

// ListSuppliers retrieves one page of the company's suppliers.
// The backend pages 0-based; the returned Page is converted to 1-based
// at this boundary so nothing above the SDK ever sees a 0-based index.
func (c *Client) ListSuppliers(ctx context.Context, q ListQuery) (Page[Supplier], error) {
	if err := c.requireScope(); err != nil {
		return Page[Supplier]{}, err
	}

	path := fmt.Sprintf("/empresas/%d/proveedores", c.CompanyID)

	var resp supplierPageResponse
	if err := c.doJSONRequest(ctx, http.MethodGet, path, q.values(), nil, &resp); err != nil {
		return Page[Supplier]{}, fmt.Errorf("failed to list suppliers: %w", err)
	}

	return Page[Supplier]{
		Items:         resp.Content,
		Page:          resp.Number + 1,
		Size:          resp.Size,
		TotalElements: resp.TotalElements,
		TotalPages:    resp.TotalPages,
	}, nil
}

// ListActiveSuppliers retrieves the unpaginated list of active suppliers.
func (c *Client) ListActiveSuppliers(ctx context.Context) ([]Supplier, error) {
	if err := c.requireScope(); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/empresas/%d/proveedores/activos", c.CompanyID)

	var suppliers []Supplier
	if err := c.doJSONRequest(ctx, http.MethodGet, path, nil, nil, &suppliers); err != nil {
		return nil, fmt.Errorf("failed to list active suppliers: %w", err)
	}

	return suppliers, nil
}

// CreateSupplier creates a new supplier in the client's company scope.
// The payload is validated locally first, including the document-type
// specific number length.
func (c *Client) CreateSupplier(ctx context.Context, payload SupplierPayload) (*Supplier, error) {
	if err := c.requireScope(); err != nil {
		return nil, err
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/empresas/%d/proveedores", c.CompanyID)

	var supplier Supplier
	if err := c.doJSONRequest(ctx, http.MethodPost, path, nil, &payload, &supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	return &supplier, nil
}

// UpdateSupplier updates an existing supplier. Blank optional fields are
// omitted from the wire and left unchanged server-side.
func (c *Client) UpdateSupplier(ctx context.Context, id int64, payload SupplierPayload) (*Supplier, error) {
	if err := c.requireScope(); err != nil {
		return nil, err
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/empresas/%d/proveedores/%d", c.CompanyID, id)

	var supplier Supplier
	if err := c.doJSONRequest(ctx, http.MethodPut, path, nil, &payload, &supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}

	return &supplier, nil
}

// DeleteSupplier removes a supplier. The backend documents this as a
// soft delete, but no restore endpoint exists in this surface, so the
// client treats it as "resource no longer appears in subsequent lists".
func (c *Client) DeleteSupplier(ctx context.Context, id int64) error {
	if err := c.requireScope(); err != nil {
		return err
	}

	path := fmt.Sprintf("/empresas/%d/proveedores/%d", c.CompanyID, id)

	if err := c.doJSONRequest(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	return nil
}
