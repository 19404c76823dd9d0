package console

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blendsoftware/posadmin/pkg/document"
	"github.com/blendsoftware/posadmin/sdk"
)

func testRoles() []sdk.Role {
	return []sdk.Role{
		{ID: 1, Name: "ADMIN", Active: true},
		{ID: 2, Name: "CAJERO", Active: true},
		{ID: 3, Name: "MESERO", Active: true},
	}
}

func TestUserForm_RoleToggleSet(t *testing.T) {
	f := NewUserForm(testRoles(), nil)

	f.ToggleRole("CAJERO")
	f.ToggleRole("ADMIN")
	require.Equal(t, []string{"ADMIN", "CAJERO"}, f.SelectedRoles())

	// Toggling an assigned role removes it; duplicates are impossible.
	f.ToggleRole("CAJERO")
	f.ToggleRole("ADMIN")
	f.ToggleRole("ADMIN")
	require.Equal(t, []string{"ADMIN"}, f.SelectedRoles())
}

func TestUserForm_PayloadRequiresRole(t *testing.T) {
	f := NewUserForm(testRoles(), nil)
	f.inputs[userFieldUsername].SetValue("ana")

	_, err := f.Payload()
	require.ErrorIs(t, err, sdk.ErrValidation)
	require.Contains(t, err.Error(), "at least one role")

	f.ToggleRole("CAJERO")
	payload, err := f.Payload()
	require.NoError(t, err)
	require.Equal(t, []string{"CAJERO"}, payload.Roles)
}

func TestUserForm_EditSeedsDraft(t *testing.T) {
	existing := &sdk.User{
		ID:       10,
		Username: "ana",
		FullName: "Ana Torres",
		Email:    "ana@example.com",
		Roles:    []string{"ADMIN", "CAJERO"},
		Active:   true,
	}

	f := NewUserForm(testRoles(), existing)
	require.Equal(t, existing, f.Editing())
	require.Equal(t, []string{"ADMIN", "CAJERO"}, f.SelectedRoles())

	payload, err := f.Payload()
	require.NoError(t, err)
	require.Equal(t, "ana", payload.Username)
	require.Equal(t, "Ana Torres", payload.FullName)
	require.Empty(t, payload.Password, "blank password stays off the payload")
}

func TestUserForm_PasswordIncludedWhenSet(t *testing.T) {
	f := NewUserForm(testRoles(), nil)
	f.ToggleRole("CAJERO")
	f.inputs[userFieldUsername].SetValue("ana")
	f.inputs[userFieldPassword].SetValue("secret")

	payload, err := f.Payload()
	require.NoError(t, err)
	require.Equal(t, "secret", payload.Password)
}

func TestSupplierForm_CycleDocumentType(t *testing.T) {
	f := NewSupplierForm(nil)
	require.Equal(t, document.TypeRUC, f.DocumentType())

	num := f.input(supplierFieldDocNumber)
	require.Equal(t, 11, num.CharLimit)
	num.SetValue("20123456789")

	// Switching to DNI re-caps the input and truncates the draft.
	f.CycleDocumentType()
	require.Equal(t, document.TypeDNI, f.DocumentType())
	require.Equal(t, 8, num.CharLimit)
	require.Equal(t, "20123456", num.Value())

	f.CycleDocumentType()
	require.Equal(t, document.TypeRUC, f.DocumentType())
	require.Equal(t, 11, num.CharLimit)
}

func TestSupplierForm_PayloadValidation(t *testing.T) {
	f := NewSupplierForm(nil)
	f.input(supplierFieldDocNumber).SetValue("20123456789")

	_, err := f.Payload()
	require.ErrorIs(t, err, sdk.ErrValidation, "legal name is required")

	f.input(supplierFieldLegalName).SetValue("  Acme SAC  ")
	payload, err := f.Payload()
	require.NoError(t, err)
	require.Equal(t, "Acme SAC", payload.LegalName, "fields are trimmed")
	require.Equal(t, document.TypeRUC, payload.DocumentType)

	f.input(supplierFieldDocNumber).SetValue("123")
	_, err = f.Payload()
	require.ErrorIs(t, err, sdk.ErrValidation)
}

func TestSupplierForm_EditSeedsDraft(t *testing.T) {
	existing := &sdk.Supplier{
		ID:             5,
		DocumentType:   document.TypeDNI,
		DocumentNumber: "12345678",
		LegalName:      "Acme SAC",
		TradeName:      "Acme",
		ContactName:    "Luis",
	}

	f := NewSupplierForm(existing)
	require.Equal(t, existing, f.Editing())
	require.Equal(t, document.TypeDNI, f.DocumentType())

	payload, err := f.Payload()
	require.NoError(t, err)
	require.Equal(t, "12345678", payload.DocumentNumber)
	require.Equal(t, "Acme", payload.TradeName)
	require.Equal(t, "Luis", payload.ContactName)
}
