package console

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/blendsoftware/posadmin/sdk"
)

// tab identifies the active resource collection.
type tab int

const (
	tabUsers tab = iota
	tabSuppliers
)

// rolesLoadedMsg carries the role reference list fetched at startup.
type rolesLoadedMsg struct {
	roles []sdk.Role
	err   error
}

// Model is the root console model. It owns both collection controllers,
// the confirmation gate, and at most one open form session, and routes
// every message to exactly one of them. All state lives on the single
// Bubble Tea event loop; commands are the only things that run
// concurrently, and they communicate exclusively through messages.
type Model struct {
	cfg    *Config
	client *sdk.Client
	logger *zap.Logger

	tab       tab
	users     *Collection[sdk.User]
	suppliers *Collection[sdk.Supplier]
	roles     []sdk.Role

	userCursor     int
	supplierCursor int

	// At most one form session exists at a time; nil means no session.
	// Forms are destroyed (not hidden) on submit-success or cancel, so a
	// new create session never leaks a previous edit's draft.
	userForm     *UserForm
	supplierForm *SupplierForm

	confirm ConfirmDialog

	searching   bool
	searchInput textinput.Model

	spin   spinner.Model
	banner string

	width  int
	height int
}

// NewModel creates the root console model.
func NewModel(cfg *Config, client *sdk.Client, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	search := textinput.New()
	search.Placeholder = "search"
	search.CharLimit = 100

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &Model{
		cfg:         cfg,
		client:      client,
		logger:      logger,
		searchInput: search,
		spin:        spin,
	}

	m.users = NewCollection(func(ctx context.Context, q sdk.ListQuery) (sdk.Page[sdk.User], error) {
		return client.ListUsers(ctx, q)
	}, cfg.PageSize, logger.Named("users"))

	m.suppliers = NewCollection(func(ctx context.Context, q sdk.ListQuery) (sdk.Page[sdk.Supplier], error) {
		return client.ListSuppliers(ctx, q)
	}, cfg.PageSize, logger.Named("suppliers"))

	return m
}

// Init starts the initial fetches.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.users.Refresh(), m.loadRoles(), m.spin.Tick}
	if m.client.Scoped() {
		cmds = append(cmds, m.suppliers.Refresh())
	}
	return tea.Batch(cmds...)
}

// loadRoles fetches the role reference list for the user form.
func (m *Model) loadRoles() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		roles, err := client.ListRoles(ctx)
		return rolesLoadedMsg{roles: roles, err: err}
	}
}

// Update is the single state transition function.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.users.Loading && !m.suppliers.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case FetchResultMsg[sdk.User]:
		m.users.Apply(msg)
		m.userCursor = clampCursor(m.userCursor, len(m.users.Items))
		return m, nil

	case FetchResultMsg[sdk.Supplier]:
		m.suppliers.Apply(msg)
		m.supplierCursor = clampCursor(m.supplierCursor, len(m.suppliers.Items))
		return m, nil

	case rolesLoadedMsg:
		if msg.err != nil {
			m.users.Err = msg.err.Error()
			m.logger.Warn("failed to load roles", zap.Error(msg.err))
			return m, nil
		}
		m.roles = msg.roles
		return m, nil

	case MutationDoneMsg:
		return m, m.handleMutationDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleMutationDone routes a mutation outcome. Success closes the open
// form session and refreshes the collection so the remote store stays the
// single source of truth; failure surfaces at the call site (the open
// form, or the collection's error surface for row actions) without
// discarding any draft.
func (m *Model) handleMutationDone(msg MutationDoneMsg) tea.Cmd {
	if msg.Err != nil {
		m.logger.Warn("mutation failed",
			zap.String("resource", msg.Resource),
			zap.String("op", msg.Op),
			zap.Error(msg.Err))

		switch {
		case msg.Resource == "user" && m.userForm != nil && (msg.Op == "create" || msg.Op == "update"):
			m.userForm.Err = msg.Err.Error()
		case msg.Resource == "supplier" && m.supplierForm != nil && (msg.Op == "create" || msg.Op == "update"):
			m.supplierForm.Err = msg.Err.Error()
		case msg.Resource == "user":
			m.users.Err = msg.Err.Error()
		default:
			m.suppliers.Err = msg.Err.Error()
		}
		return nil
	}

	m.logger.Info("mutation applied",
		zap.String("resource", msg.Resource),
		zap.String("op", msg.Op))
	m.banner = fmt.Sprintf("%s %s", msg.Resource, pastTense(msg.Op))

	if msg.Resource == "user" {
		m.userForm = nil
		return m.users.Refresh()
	}
	m.supplierForm = nil
	return m.suppliers.Refresh()
}

func pastTense(op string) string {
	switch op {
	case "create":
		return "created"
	case "update":
		return "updated"
	case "delete":
		return "deleted"
	case "activate":
		return "activated"
	case "deactivate":
		return "deactivated"
	default:
		return op
	}
}

// handleKey routes a key event by surface precedence: confirmation gate,
// then an open form session, then search input, then global keys.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if cmd, handled := m.confirm.Update(msg); handled {
		return m, cmd
	}

	if m.searching {
		return m, m.handleSearchKey(msg)
	}

	if m.userForm != nil {
		return m, m.handleUserFormKey(msg)
	}
	if m.supplierForm != nil {
		return m, m.handleSupplierFormKey(msg)
	}

	return m, m.handleGlobalKey(msg)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		term := m.searchInput.Value()
		if m.tab == tabUsers {
			return m.users.ChangeSearch(term)
		}
		return m.suppliers.ChangeSearch(term)
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return cmd
}

func (m *Model) handleUserFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.userForm = nil
		return nil
	case "ctrl+s":
		return m.submitUserForm()
	}
	return m.userForm.Update(msg)
}

// submitUserForm validates the draft and issues the mutation. Local
// validation failures (such as zero selected roles) stay inside the form
// and never produce a network call.
func (m *Model) submitUserForm() tea.Cmd {
	payload, err := m.userForm.Payload()
	if err != nil {
		m.userForm.Err = err.Error()
		return nil
	}

	client := m.client
	if existing := m.userForm.Editing(); existing != nil {
		id := existing.ID
		return Mutate("user", "update", func(ctx context.Context) error {
			_, err := client.UpdateUser(ctx, id, payload)
			return err
		})
	}
	return Mutate("user", "create", func(ctx context.Context) error {
		_, err := client.CreateUser(ctx, payload)
		return err
	})
}

func (m *Model) handleSupplierFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.supplierForm = nil
		return nil
	case "ctrl+s":
		return m.submitSupplierForm()
	}
	return m.supplierForm.Update(msg)
}

func (m *Model) submitSupplierForm() tea.Cmd {
	payload, err := m.supplierForm.Payload()
	if err != nil {
		m.supplierForm.Err = err.Error()
		return nil
	}

	client := m.client
	if existing := m.supplierForm.Editing(); existing != nil {
		id := existing.ID
		return Mutate("supplier", "update", func(ctx context.Context) error {
			_, err := client.UpdateSupplier(ctx, id, payload)
			return err
		})
	}
	return Mutate("supplier", "create", func(ctx context.Context) error {
		_, err := client.CreateSupplier(ctx, payload)
		return err
	})
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) tea.Cmd {
	m.banner = ""

	switch msg.String() {
	case "q":
		return tea.Quit

	case "tab":
		if m.client.Scoped() {
			if m.tab == tabUsers {
				m.tab = tabSuppliers
			} else {
				m.tab = tabUsers
			}
		}
		return nil

	case "r":
		if m.tab == tabUsers {
			return m.users.Refresh()
		}
		return m.suppliers.Refresh()

	case "/":
		m.searching = true
		if m.tab == tabUsers {
			m.searchInput.SetValue(m.users.Search)
		} else {
			m.searchInput.SetValue(m.suppliers.Search)
		}
		return m.searchInput.Focus()

	case "left", "[":
		if m.tab == tabUsers {
			return m.users.PrevPage()
		}
		return m.suppliers.PrevPage()

	case "right", "]":
		if m.tab == tabUsers {
			return m.users.NextPage()
		}
		return m.suppliers.NextPage()

	case "up", "k":
		m.moveCursor(-1)
		return nil

	case "down", "j":
		m.moveCursor(1)
		return nil

	case "n":
		return m.openCreateForm()

	case "e":
		return m.openEditForm()

	case "a":
		return m.toggleActive()

	case "d":
		m.requestDelete()
		return nil
	}

	return nil
}

func (m *Model) moveCursor(delta int) {
	if m.tab == tabUsers {
		m.userCursor = clampCursor(m.userCursor+delta, len(m.users.Items))
		return
	}
	m.supplierCursor = clampCursor(m.supplierCursor+delta, len(m.suppliers.Items))
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}

// selectedUser returns the user under the cursor, or nil.
func (m *Model) selectedUser() *sdk.User {
	if m.userCursor >= len(m.users.Items) {
		return nil
	}
	u := m.users.Items[m.userCursor]
	return &u
}

// selectedSupplier returns the supplier under the cursor, or nil.
func (m *Model) selectedSupplier() *sdk.Supplier {
	if m.supplierCursor >= len(m.suppliers.Items) {
		return nil
	}
	s := m.suppliers.Items[m.supplierCursor]
	return &s
}

func (m *Model) openCreateForm() tea.Cmd {
	if m.tab == tabUsers {
		m.userForm = NewUserForm(m.roles, nil)
		return nil
	}
	m.supplierForm = NewSupplierForm(nil)
	return nil
}

func (m *Model) openEditForm() tea.Cmd {
	if m.tab == tabUsers {
		if u := m.selectedUser(); u != nil {
			m.userForm = NewUserForm(m.roles, u)
		}
		return nil
	}
	if s := m.selectedSupplier(); s != nil {
		m.supplierForm = NewSupplierForm(s)
	}
	return nil
}

// toggleActive flips the lifecycle flag of the selected user through the
// dedicated activate/deactivate endpoints. Suppliers have no such
// endpoint in this surface, so the key is inert on their tab.
func (m *Model) toggleActive() tea.Cmd {
	if m.tab != tabUsers {
		return nil
	}
	u := m.selectedUser()
	if u == nil {
		return nil
	}

	op := "activate"
	target := true
	if u.Active {
		op = "deactivate"
		target = false
	}

	client := m.client
	id := u.ID
	return Mutate("user", op, func(ctx context.Context) error {
		return client.SetUserActive(ctx, id, target)
	})
}

// requestDelete hands the selected resource to the confirmation gate.
// The delete command is dispatched only by the gate's confirm signal.
func (m *Model) requestDelete() {
	client := m.client

	if m.tab == tabUsers {
		u := m.selectedUser()
		if u == nil {
			return
		}
		id := u.ID
		m.confirm.Open(fmt.Sprintf("user %q", u.Username), "delete",
			Mutate("user", "delete", func(ctx context.Context) error {
				return client.DeleteUser(ctx, id)
			}))
		return
	}

	s := m.selectedSupplier()
	if s == nil {
		return
	}
	id := s.ID
	m.confirm.Open(fmt.Sprintf("supplier %q", s.LegalName), "delete",
		Mutate("supplier", "delete", func(ctx context.Context) error {
			return client.DeleteSupplier(ctx, id)
		}))
}
