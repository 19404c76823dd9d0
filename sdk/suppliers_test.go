package sdk

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func validSupplierPayload() SupplierPayload {
	return SupplierPayload{
		DocumentType:   "6",
		DocumentNumber: "20123456789",
		LegalName:      "Acme SAC",
	}
}

func TestListSuppliers_PageConversion(t *testing.T) {
	var gotPath, gotSearch string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSearch = r.URL.Query().Get("search")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"content": [{"id": 1, "razonSocial": "Acme SAC", "tipoDocumento": "6", "numeroDocumento": "20123456789", "activo": true}],
			"totalElements": 31,
			"number": 1,
			"size": 10,
			"totalPages": 4
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 7)
	page, err := client.ListSuppliers(context.Background(), ListQuery{Page: 2, Size: 10, Search: "acme"})
	if err != nil {
		t.Fatalf("ListSuppliers() unexpected error = %v", err)
	}

	if gotPath != "/empresas/7/proveedores" {
		t.Errorf("path = %q, want company-nested path", gotPath)
	}
	if gotSearch != "acme" {
		t.Errorf("search = %q, want %q", gotSearch, "acme")
	}
	if page.Page != 2 {
		t.Errorf("Page = %d, want 0-based wire index converted to 2", page.Page)
	}
	if page.TotalPages != 4 || page.TotalElements != 31 {
		t.Errorf("totals = %d/%d, want 4/31", page.TotalPages, page.TotalElements)
	}
	if len(page.Items) != 1 || page.Items[0].LegalName != "Acme SAC" {
		t.Errorf("items = %+v, want one supplier", page.Items)
	}
}

func TestSuppliers_RequireScope(t *testing.T) {
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 0)
	ctx := context.Background()

	if _, err := client.ListSuppliers(ctx, ListQuery{}); !errors.Is(err, ErrMissingScope) {
		t.Errorf("ListSuppliers() error = %v, want ErrMissingScope", err)
	}
	if _, err := client.ListActiveSuppliers(ctx); !errors.Is(err, ErrMissingScope) {
		t.Errorf("ListActiveSuppliers() error = %v, want ErrMissingScope", err)
	}
	if _, err := client.CreateSupplier(ctx, validSupplierPayload()); !errors.Is(err, ErrMissingScope) {
		t.Errorf("CreateSupplier() error = %v, want ErrMissingScope", err)
	}
	if _, err := client.UpdateSupplier(ctx, 1, validSupplierPayload()); !errors.Is(err, ErrMissingScope) {
		t.Errorf("UpdateSupplier() error = %v, want ErrMissingScope", err)
	}
	if err := client.DeleteSupplier(ctx, 1); !errors.Is(err, ErrMissingScope) {
		t.Errorf("DeleteSupplier() error = %v, want ErrMissingScope", err)
	}

	if requests != 0 {
		t.Errorf("server received %d requests, want 0 from an unscoped client", requests)
	}
}

func TestCreateSupplier(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 5, "razonSocial": "Acme SAC", "tipoDocumento": "6", "numeroDocumento": "20123456789", "activo": true}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 7)
	supplier, err := client.CreateSupplier(context.Background(), validSupplierPayload())
	if err != nil {
		t.Fatalf("CreateSupplier() unexpected error = %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/empresas/7/proveedores" {
		t.Errorf("request = %s %s, want POST /empresas/7/proveedores", gotMethod, gotPath)
	}
	if gotBody["razonSocial"] != "Acme SAC" {
		t.Errorf("razonSocial = %v, want legal name on the wire", gotBody["razonSocial"])
	}
	if supplier.ID != 5 {
		t.Errorf("ID = %d, want 5", supplier.ID)
	}
}

func TestCreateSupplier_InvalidDocumentNumber(t *testing.T) {
	tests := []struct {
		name    string
		payload SupplierPayload
	}{
		{
			name: "RUC too short",
			payload: SupplierPayload{
				DocumentType:   "6",
				DocumentNumber: "2012345678",
				LegalName:      "Acme SAC",
			},
		},
		{
			name: "DNI with letters",
			payload: SupplierPayload{
				DocumentType:   "1",
				DocumentNumber: "1234567a",
				LegalName:      "Acme SAC",
			},
		},
		{
			name: "missing legal name",
			payload: SupplierPayload{
				DocumentType:   "6",
				DocumentNumber: "20123456789",
			},
		},
	}

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 7)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateSupplier(context.Background(), tt.payload)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}

	if requests != 0 {
		t.Errorf("server received %d requests, want 0 for locally invalid payloads", requests)
	}
}

func TestCreateSupplier_Conflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error": "document number already registered"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 7)
	_, err := client.CreateSupplier(context.Background(), validSupplierPayload())

	if !errors.Is(err, ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestListActiveSuppliers(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "razonSocial": "Acme SAC", "activo": true}]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 7)
	suppliers, err := client.ListActiveSuppliers(context.Background())
	if err != nil {
		t.Fatalf("ListActiveSuppliers() unexpected error = %v", err)
	}

	if gotPath != "/empresas/7/proveedores/activos" {
		t.Errorf("path = %q, want actives path", gotPath)
	}
	if len(suppliers) != 1 {
		t.Errorf("suppliers = %d, want 1", len(suppliers))
	}
}

func TestDeleteSupplier(t *testing.T) {
	var gotMethod, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, 7)
	if err := client.DeleteSupplier(context.Background(), 5); err != nil {
		t.Fatalf("DeleteSupplier() unexpected error = %v", err)
	}

	if gotMethod != http.MethodDelete || gotPath != "/empresas/7/proveedores/5" {
		t.Errorf("request = %s %s, want DELETE /empresas/7/proveedores/5", gotMethod, gotPath)
	}
}
