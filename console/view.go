package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blendsoftware/posadmin/pkg/document"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Underline(true).
			Padding(0, 2)

	headerRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("237"))

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	formTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	formBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 2)
)

// View renders the whole console. Exactly one surface owns the body:
// the confirmation prompt, an open form session, or the active
// collection table.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	switch {
	case m.confirm.Active():
		b.WriteString(m.confirm.View())
	case m.userForm != nil:
		b.WriteString(m.userForm.View())
	case m.supplierForm != nil:
		b.WriteString(m.supplierForm.View())
	case m.tab == tabUsers:
		b.WriteString(m.viewUsers())
	default:
		b.WriteString(m.viewSuppliers())
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m *Model) viewHeader() string {
	scope := "all companies"
	if m.client.Scoped() {
		scope = fmt.Sprintf("company %d", m.client.CompanyID)
	}

	tabs := []string{activeTabStyle.Render("Users")}
	if m.client.Scoped() {
		users, suppliers := activeTabStyle, tabStyle
		if m.tab == tabSuppliers {
			users, suppliers = tabStyle, activeTabStyle
		}
		tabs = []string{users.Render("Users"), suppliers.Render("Suppliers")}
	}

	return titleStyle.Render("posadmin · "+scope) + "  " + strings.Join(tabs, "")
}

func (m *Model) viewUsers() string {
	c := m.users
	var b strings.Builder

	b.WriteString(m.viewListStatus(c.Loading, c.Err, c.Search))
	b.WriteString(headerRowStyle.Render(fmt.Sprintf("  %-20s %-25s %-25s %-8s %s",
		"USERNAME", "NAME", "ROLES", "ACTIVE", "EMAIL")) + "\n")

	if len(c.Items) == 0 && !c.Loading {
		b.WriteString(inactiveStyle.Render("  no users") + "\n")
	}

	for i, u := range c.Items {
		row := fmt.Sprintf("  %-20s %-25s %-25s %-8s %s",
			truncate(u.Username, 20),
			truncate(u.FullName, 25),
			truncate(strings.Join(u.Roles, ","), 25),
			activeLabel(u.Active),
			u.Email)
		b.WriteString(m.renderRow(row, i == m.userCursor, u.Active) + "\n")
	}

	b.WriteString(m.viewPagination(c.Page, c.TotalPages, c.TotalElements))
	return b.String()
}

func (m *Model) viewSuppliers() string {
	c := m.suppliers
	var b strings.Builder

	b.WriteString(m.viewListStatus(c.Loading, c.Err, c.Search))
	b.WriteString(headerRowStyle.Render(fmt.Sprintf("  %-5s %-12s %-30s %-15s %s",
		"DOC", "NUMBER", "LEGAL NAME", "PHONE", "CONTACT")) + "\n")

	if len(c.Items) == 0 && !c.Loading {
		b.WriteString(inactiveStyle.Render("  no suppliers") + "\n")
	}

	for i, s := range c.Items {
		row := fmt.Sprintf("  %-5s %-12s %-30s %-15s %s",
			document.Label(s.DocumentType),
			s.DocumentNumber,
			truncate(s.LegalName, 30),
			truncate(s.Phone, 15),
			truncate(s.ContactName, 20))
		b.WriteString(m.renderRow(row, i == m.supplierCursor, s.Active) + "\n")
	}

	b.WriteString(m.viewPagination(c.Page, c.TotalPages, c.TotalElements))
	return b.String()
}

func (m *Model) viewListStatus(loading bool, errMsg, search string) string {
	var b strings.Builder

	if m.searching {
		b.WriteString("  search: " + m.searchInput.View() + "\n")
	} else if search != "" {
		b.WriteString(inactiveStyle.Render(fmt.Sprintf("  filter: %q", search)) + "\n")
	}

	if loading {
		b.WriteString("  " + m.spin.View() + " loading\n")
	}
	if errMsg != "" {
		b.WriteString("  " + errorStyle.Render(errMsg) + "\n")
	}
	if m.banner != "" {
		b.WriteString("  " + bannerStyle.Render(m.banner) + "\n")
	}

	return b.String()
}

func (m *Model) renderRow(row string, selected, active bool) string {
	switch {
	case selected:
		return selectedRowStyle.Render(row)
	case !active:
		return inactiveStyle.Render(row)
	default:
		return row
	}
}

func (m *Model) viewPagination(page, totalPages, totalElements int) string {
	if totalPages < 1 {
		totalPages = 1
	}
	return inactiveStyle.Render(
		fmt.Sprintf("\n  page %d/%d · %d total", page, totalPages, totalElements)) + "\n"
}

func (m *Model) viewFooter() string {
	switch {
	case m.confirm.Active():
		return helpStyle.Render("  enter/y confirm · esc/n cancel")
	case m.userForm != nil, m.supplierForm != nil:
		return ""
	case m.searching:
		return helpStyle.Render("  enter apply · esc cancel")
	}

	keys := "q quit · tab switch · ←/→ page · ↑/↓ select · / search · r refresh · n new · e edit · d delete"
	if m.tab == tabUsers {
		keys += " · a toggle active"
	}
	return helpStyle.Render("  " + keys)
}

// View renders the confirmation prompt.
func (d *ConfirmDialog) View() string {
	if !d.open {
		return ""
	}
	return confirmBoxStyle.Render(fmt.Sprintf(
		"%s %s?\n\nThis cannot be undone.",
		capitalize(d.actionLabel), d.subject))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func activeLabel(active bool) string {
	if active {
		return "yes"
	}
	return "no"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
