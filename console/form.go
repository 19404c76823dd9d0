package console

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blendsoftware/posadmin/pkg/document"
	"github.com/blendsoftware/posadmin/sdk"
)

// User form field order.
const (
	userFieldUsername = iota
	userFieldFullName
	userFieldEmail
	userFieldPhone
	userFieldPassword
	userFieldRoles
	userFieldCount
)

// UserForm is the transient edit/create session for a single user.
// It owns a draft copy of the editable fields; the draft survives failed
// submits untouched and is destroyed entirely on success or cancel.
type UserForm struct {
	// editing is the user being edited, or nil for a create session.
	editing *sdk.User

	inputs []textinput.Model
	focus  int

	// roles is the reference list populating the selector.
	roles []sdk.Role

	// selected is the toggle-set of assigned role names: clicking a role
	// adds it if absent and removes it if present, so duplicates are
	// impossible by construction and order is irrelevant.
	selected   map[string]struct{}
	roleCursor int

	// Err is the submit error surfaced inside the still-open form.
	Err string
}

// NewUserForm creates a form session seeded from an existing user (edit)
// or from empty defaults (create).
func NewUserForm(roles []sdk.Role, existing *sdk.User) *UserForm {
	f := &UserForm{
		editing:  existing,
		roles:    roles,
		selected: make(map[string]struct{}),
	}

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 50

	fullName := textinput.New()
	fullName.Placeholder = "full name"
	fullName.CharLimit = 100

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 100

	phone := textinput.New()
	phone.Placeholder = "phone"
	phone.CharLimit = 20

	password := textinput.New()
	password.CharLimit = 72
	password.EchoMode = textinput.EchoPassword
	if existing != nil {
		password.Placeholder = "leave blank to keep current password"
	} else {
		password.Placeholder = "password"
	}

	f.inputs = []textinput.Model{username, fullName, email, phone, password}

	if existing != nil {
		f.inputs[userFieldUsername].SetValue(existing.Username)
		f.inputs[userFieldFullName].SetValue(existing.FullName)
		f.inputs[userFieldEmail].SetValue(existing.Email)
		f.inputs[userFieldPhone].SetValue(existing.Phone)
		for _, role := range existing.Roles {
			f.selected[role] = struct{}{}
		}
	}

	f.inputs[userFieldUsername].Focus()
	return f
}

// Editing returns the user under edit, or nil for a create session.
func (f *UserForm) Editing() *sdk.User {
	return f.editing
}

// ToggleRole adds the role name if absent or removes it if present.
func (f *UserForm) ToggleRole(name string) {
	if _, ok := f.selected[name]; ok {
		delete(f.selected, name)
		return
	}
	f.selected[name] = struct{}{}
}

// SelectedRoles returns the assigned role names in stable order.
func (f *UserForm) SelectedRoles() []string {
	names := make([]string, 0, len(f.selected))
	for name := range f.selected {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Payload validates the draft and converts it into a request payload.
// A draft with zero selected roles fails locally; no network call is
// made for it. A blank password is left out of the payload entirely so
// an update never overwrites the stored credential.
func (f *UserForm) Payload() (sdk.UserPayload, error) {
	if len(f.selected) == 0 {
		return sdk.UserPayload{}, fmt.Errorf("%w: at least one role must be selected", sdk.ErrValidation)
	}

	p := sdk.UserPayload{
		Username: strings.TrimSpace(f.inputs[userFieldUsername].Value()),
		FullName: strings.TrimSpace(f.inputs[userFieldFullName].Value()),
		Email:    strings.TrimSpace(f.inputs[userFieldEmail].Value()),
		Phone:    strings.TrimSpace(f.inputs[userFieldPhone].Value()),
		Roles:    f.SelectedRoles(),
	}

	if pw := f.inputs[userFieldPassword].Value(); pw != "" {
		p.Password = pw
	}

	return p, nil
}

// Update handles a key event while the form is open.
func (f *UserForm) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		if f.focus == userFieldRoles && msg.String() == "down" && f.roleCursor < len(f.roles)-1 {
			f.roleCursor++
			return nil
		}
		f.setFocus((f.focus + 1) % userFieldCount)
		return nil
	case "shift+tab", "up":
		if f.focus == userFieldRoles && msg.String() == "up" && f.roleCursor > 0 {
			f.roleCursor--
			return nil
		}
		f.setFocus((f.focus + userFieldCount - 1) % userFieldCount)
		return nil
	case " ":
		if f.focus == userFieldRoles && len(f.roles) > 0 {
			f.ToggleRole(f.roles[f.roleCursor].Name)
			return nil
		}
	}

	if f.focus < len(f.inputs) {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return cmd
	}
	return nil
}

func (f *UserForm) setFocus(idx int) {
	f.focus = idx
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// View renders the form.
func (f *UserForm) View() string {
	var b strings.Builder

	title := "New user"
	if f.editing != nil {
		title = "Edit user: " + f.editing.Username
	}
	b.WriteString(formTitleStyle.Render(title) + "\n\n")

	labels := []string{"Username", "Name", "Email", "Phone", "Password"}
	for i, input := range f.inputs {
		b.WriteString(fmt.Sprintf("%-10s %s\n", labels[i], input.View()))
	}

	b.WriteString("\nRoles (space to toggle):\n")
	for i, role := range f.roles {
		mark := "[ ]"
		if _, ok := f.selected[role.Name]; ok {
			mark = "[x]"
		}
		cursor := "  "
		if f.focus == userFieldRoles && i == f.roleCursor {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, mark, role.Name))
	}

	if f.Err != "" {
		b.WriteString("\n" + errorStyle.Render(f.Err) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("ctrl+s save · esc cancel · tab next field"))
	return formBoxStyle.Render(b.String())
}

// Supplier form field order. Field 0 is the document-type selector, the
// rest are text inputs (stored at index-1 in inputs).
const (
	supplierFieldDocType = iota
	supplierFieldDocNumber
	supplierFieldLegalName
	supplierFieldTradeName
	supplierFieldAddress
	supplierFieldPhone
	supplierFieldEmail
	supplierFieldContactName
	supplierFieldContactPhone
	supplierFieldNotes
	supplierFieldCount
)

// SupplierForm is the transient edit/create session for a single supplier.
type SupplierForm struct {
	editing *sdk.Supplier

	// docType is the document catalogue code; it caps the number input.
	docType string

	inputs []textinput.Model
	focus  int

	Err string
}

// NewSupplierForm creates a form session seeded from an existing supplier
// (edit) or from defaults (create, document type RUC).
func NewSupplierForm(existing *sdk.Supplier) *SupplierForm {
	f := &SupplierForm{
		editing: existing,
		docType: document.TypeRUC,
	}
	if existing != nil {
		f.docType = existing.DocumentType
	}

	placeholders := []string{
		"document number", "legal name", "trade name", "address",
		"phone", "email", "contact name", "contact phone", "notes",
	}
	limits := []int{
		document.MaxLength(f.docType), 255, 255, 255, 20, 100, 100, 20, 500,
	}

	f.inputs = make([]textinput.Model, len(placeholders))
	for i := range placeholders {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = limits[i]
		f.inputs[i] = ti
	}

	if existing != nil {
		f.input(supplierFieldDocNumber).SetValue(existing.DocumentNumber)
		f.input(supplierFieldLegalName).SetValue(existing.LegalName)
		f.input(supplierFieldTradeName).SetValue(existing.TradeName)
		f.input(supplierFieldAddress).SetValue(existing.Address)
		f.input(supplierFieldPhone).SetValue(existing.Phone)
		f.input(supplierFieldEmail).SetValue(existing.Email)
		f.input(supplierFieldContactName).SetValue(existing.ContactName)
		f.input(supplierFieldContactPhone).SetValue(existing.ContactPhone)
		f.input(supplierFieldNotes).SetValue(existing.Notes)
	}

	f.focus = supplierFieldDocNumber
	f.input(supplierFieldDocNumber).Focus()
	return f
}

// Editing returns the supplier under edit, or nil for a create session.
func (f *SupplierForm) Editing() *sdk.Supplier {
	return f.editing
}

// input returns the text input backing a field index.
func (f *SupplierForm) input(field int) *textinput.Model {
	return &f.inputs[field-1]
}

// DocumentType returns the currently selected document type code.
func (f *SupplierForm) DocumentType() string {
	return f.docType
}

// CycleDocumentType advances the document-type selector. The number
// input's limit follows the new type and an over-long draft number is
// truncated to the new cap.
func (f *SupplierForm) CycleDocumentType() {
	for i, t := range document.Types {
		if t.Code == f.docType {
			f.docType = document.Types[(i+1)%len(document.Types)].Code
			break
		}
	}

	limit := document.MaxLength(f.docType)
	num := f.input(supplierFieldDocNumber)
	num.CharLimit = limit
	if v := num.Value(); len(v) > limit {
		num.SetValue(v[:limit])
	}
}

// Payload validates the draft and converts it into a request payload.
func (f *SupplierForm) Payload() (sdk.SupplierPayload, error) {
	legalName := strings.TrimSpace(f.input(supplierFieldLegalName).Value())
	if legalName == "" {
		return sdk.SupplierPayload{}, fmt.Errorf("%w: legal name is required", sdk.ErrValidation)
	}

	number := strings.TrimSpace(f.input(supplierFieldDocNumber).Value())
	if err := document.ValidateNumber(f.docType, number); err != nil {
		return sdk.SupplierPayload{}, fmt.Errorf("%w: %v", sdk.ErrValidation, err)
	}

	return sdk.SupplierPayload{
		DocumentType:   f.docType,
		DocumentNumber: number,
		LegalName:      legalName,
		TradeName:      strings.TrimSpace(f.input(supplierFieldTradeName).Value()),
		Address:        strings.TrimSpace(f.input(supplierFieldAddress).Value()),
		Phone:          strings.TrimSpace(f.input(supplierFieldPhone).Value()),
		Email:          strings.TrimSpace(f.input(supplierFieldEmail).Value()),
		ContactName:    strings.TrimSpace(f.input(supplierFieldContactName).Value()),
		ContactPhone:   strings.TrimSpace(f.input(supplierFieldContactPhone).Value()),
		Notes:          strings.TrimSpace(f.input(supplierFieldNotes).Value()),
	}, nil
}

// Update handles a key event while the form is open.
func (f *SupplierForm) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		f.setFocus((f.focus + 1) % supplierFieldCount)
		return nil
	case "shift+tab", "up":
		f.setFocus((f.focus + supplierFieldCount - 1) % supplierFieldCount)
		return nil
	case " ", "left", "right":
		if f.focus == supplierFieldDocType {
			f.CycleDocumentType()
			return nil
		}
	}

	if f.focus == supplierFieldDocType {
		return nil
	}

	var cmd tea.Cmd
	idx := f.focus - 1
	f.inputs[idx], cmd = f.inputs[idx].Update(msg)
	return cmd
}

func (f *SupplierForm) setFocus(idx int) {
	f.focus = idx
	for i := range f.inputs {
		if i == idx-1 {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// View renders the form.
func (f *SupplierForm) View() string {
	var b strings.Builder

	title := "New supplier"
	if f.editing != nil {
		title = "Edit supplier: " + f.editing.LegalName
	}
	b.WriteString(formTitleStyle.Render(title) + "\n\n")

	cursor := "  "
	if f.focus == supplierFieldDocType {
		cursor = "> "
	}
	b.WriteString(fmt.Sprintf("%sDoc type   %s (space to change, %d digits)\n",
		cursor, document.Label(f.docType), document.MaxLength(f.docType)))

	labels := []string{
		"Doc number", "Legal name", "Trade name", "Address",
		"Phone", "Email", "Contact", "Contact ph", "Notes",
	}
	for i, input := range f.inputs {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", labels[i], input.View()))
	}

	if f.Err != "" {
		b.WriteString("\n" + errorStyle.Render(f.Err) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("ctrl+s save · esc cancel · tab next field"))
	return formBoxStyle.Render(b.String())
}
