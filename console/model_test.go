package console

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/blendsoftware/posadmin/sdk"
)

func newTestModel(t *testing.T, companyID int64) *Model {
	t.Helper()

	client, err := sdk.NewClient(sdk.ClientConfig{
		BaseURL:   "https://api.example.com",
		CompanyID: companyID,
		Token:     "test-token",
	})
	require.NoError(t, err)

	cfg := &Config{
		APIBaseURL: "https://api.example.com",
		CompanyID:  companyID,
		Token:      "test-token",
		PageSize:   10,
	}
	return NewModel(cfg, client, nil)
}

func TestModel_MutationSuccessClosesFormAndRefreshes(t *testing.T) {
	m := newTestModel(t, 7)
	m.userForm = NewUserForm(testRoles(), nil)

	cmd := m.handleMutationDone(MutationDoneMsg{Resource: "user", Op: "create"})

	require.Nil(t, m.userForm, "form session is destroyed on success")
	require.NotNil(t, cmd, "the collection re-reads the backend after a mutation")
	require.Equal(t, "user created", m.banner)
}

func TestModel_MutationFailureSurfacesInOpenForm(t *testing.T) {
	m := newTestModel(t, 7)
	m.userForm = NewUserForm(testRoles(), nil)

	cmd := m.handleMutationDone(MutationDoneMsg{
		Resource: "user",
		Op:       "create",
		Err:      errors.New("username already in use"),
	})

	require.Nil(t, cmd, "no refresh on failure")
	require.NotNil(t, m.userForm, "draft survives a failed submit")
	require.Equal(t, "username already in use", m.userForm.Err)
}

func TestModel_RowMutationFailureSurfacesOnCollection(t *testing.T) {
	m := newTestModel(t, 7)

	m.handleMutationDone(MutationDoneMsg{
		Resource: "user",
		Op:       "delete",
		Err:      errors.New("backend down"),
	})
	require.Equal(t, "backend down", m.users.Err)

	m.handleMutationDone(MutationDoneMsg{
		Resource: "supplier",
		Op:       "delete",
		Err:      errors.New("conflict"),
	})
	require.Equal(t, "conflict", m.suppliers.Err)
}

func TestModel_DeleteGoesThroughConfirmGate(t *testing.T) {
	m := newTestModel(t, 7)
	m.users.Items = []sdk.User{{ID: 10, Username: "ana", Active: true}}

	m.requestDelete()
	require.True(t, m.confirm.Active(), "delete arms the gate instead of firing")

	cmd, handled := m.confirm.Update(keyMsg("esc"))
	require.True(t, handled)
	require.Nil(t, cmd, "cancel dispatches nothing")
	require.False(t, m.confirm.Active())
}

func TestModel_TabSwitchRequiresScope(t *testing.T) {
	unscoped := newTestModel(t, 0)
	unscoped.handleGlobalKey(keyMsg("tab"))
	require.Equal(t, tabUsers, unscoped.tab, "suppliers need a company scope")

	scoped := newTestModel(t, 7)
	scoped.handleGlobalKey(keyMsg("tab"))
	require.Equal(t, tabSuppliers, scoped.tab)
}

func TestClampCursor(t *testing.T) {
	require.Equal(t, 0, clampCursor(-1, 5))
	require.Equal(t, 4, clampCursor(9, 5))
	require.Equal(t, 2, clampCursor(2, 5))
	require.Equal(t, 0, clampCursor(3, 0))
}
