package sdk

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/blendsoftware/posadmin/pkg/document"
)

// validate is the shared payload validator. Tags mirror the backend's
// constraints so obviously bad payloads never leave the client.
var validate = validator.New(validator.WithRequiredStructEnabled())

// User represents a back-office user with role-based access.
// Role membership is denormalized as role names on read and assigned
// by name on write.
type User struct {
	// ID is the unique identifier within the tenant scope.
	ID int64 `json:"id"`

	// CompanyID is the tenant this user belongs to.
	CompanyID int64 `json:"empresaId"`

	// Username is unique within the tenant.
	Username string `json:"username"`

	// FullName is the optional display name.
	FullName string `json:"nombre,omitempty"`

	Email string `json:"email,omitempty"`
	Phone string `json:"telefono,omitempty"`

	// Roles is the set of role names assigned to the user.
	Roles []string `json:"roles"`

	// Active is the lifecycle flag; inactive users remain addressable
	// but are excluded from active-only queries.
	Active bool `json:"activo"`
}

// Role is a reference entry used to populate role selection.
// Role name is the canonical cross-reference key for users.
type Role struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"empresaId"`
	Name      string `json:"nombre"`
	Active    bool   `json:"activo"`
}

// Supplier represents a supplier with commercial data.
type Supplier struct {
	ID        int64 `json:"id"`
	CompanyID int64 `json:"empresaId"`

	// DocumentType is the document catalogue code ("6" = RUC, "1" = DNI).
	DocumentType string `json:"tipoDocumento"`

	// DocumentNumber is unique per company; its length is constrained
	// by the document type (11 for RUC, 8 for DNI).
	DocumentNumber string `json:"numeroDocumento"`

	// LegalName is the registered business name (required).
	LegalName string `json:"razonSocial"`

	TradeName    string `json:"nombreComercial,omitempty"`
	Address      string `json:"direccion,omitempty"`
	Phone        string `json:"telefono,omitempty"`
	Email        string `json:"email,omitempty"`
	ContactName  string `json:"contactoNombre,omitempty"`
	ContactPhone string `json:"contactoTelefono,omitempty"`
	Notes        string `json:"observaciones,omitempty"`

	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPayload is the request body for creating or updating a user.
// The id and tenant scope are never part of an update: both are
// immutable once assigned.
type UserPayload struct {
	// CompanyID is set by the client from its own scope on create.
	CompanyID int64 `json:"empresaId,omitempty"`

	Username string `json:"username" validate:"required,min=3,max=50"`
	FullName string `json:"nombre,omitempty" validate:"max=100"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Phone    string `json:"telefono,omitempty" validate:"max=20"`

	// Password is omitted from the wire when blank so an update never
	// overwrites the stored credential with an empty string.
	Password string `json:"password,omitempty"`

	// Roles must contain at least one role name at all times.
	Roles []string `json:"roles" validate:"required,min=1"`
}

// Validate checks the payload locally before any network call.
func (p *UserPayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, validationMessage(err))
	}
	return nil
}

// SupplierPayload is the request body for creating or updating a supplier.
type SupplierPayload struct {
	DocumentType   string `json:"tipoDocumento" validate:"required"`
	DocumentNumber string `json:"numeroDocumento" validate:"required"`
	LegalName      string `json:"razonSocial" validate:"required,max=255"`

	TradeName    string `json:"nombreComercial,omitempty" validate:"max=255"`
	Address      string `json:"direccion,omitempty" validate:"max=255"`
	Phone        string `json:"telefono,omitempty" validate:"max=20"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	ContactName  string `json:"contactoNombre,omitempty" validate:"max=100"`
	ContactPhone string `json:"contactoTelefono,omitempty" validate:"max=20"`
	Notes        string `json:"observaciones,omitempty" validate:"max=500"`
}

// Validate checks the payload locally before any network call,
// including the document-type specific number constraints.
func (p *SupplierPayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, validationMessage(err))
	}
	if err := document.ValidateNumber(p.DocumentType, p.DocumentNumber); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// validationMessage renders the first validator failure as a short
// human-readable message for the form error surface.
func validationMessage(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err.Error()
	}

	fe := errs[0]
	switch {
	case fe.Field() == "Roles":
		return "at least one role must be selected"
	case fe.Tag() == "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case fe.Tag() == "email":
		return fmt.Sprintf("%s is not a valid email address", fe.Field())
	case fe.Tag() == "min":
		return fmt.Sprintf("%s is too short (minimum %s)", fe.Field(), fe.Param())
	case fe.Tag() == "max":
		return fmt.Sprintf("%s is too long (maximum %s)", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// Page is one page of a resource collection. Page is 1-based; the SDK
// converts the backend's 0-based page index at the wire boundary.
type Page[T any] struct {
	Items         []T
	Page          int
	Size          int
	TotalElements int
	TotalPages    int
}

// ListQuery holds optional list parameters. Zero values are omitted
// from the wire entirely rather than sent as defaults.
type ListQuery struct {
	// Page is the 1-based page number; zero omits the parameter.
	Page int

	// Size is the page size; zero omits the parameter.
	Size int

	// Search is a free-text filter; empty omits the parameter.
	Search string
}

// values encodes the query, omitting absent parameters.
func (q ListQuery) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		v.Set("limit", strconv.Itoa(q.Size))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	return v
}

// supplierPageResponse is the backend's paginated wire shape.
// The page index ("number") is 0-based.
type supplierPageResponse struct {
	Content       []Supplier `json:"content"`
	TotalElements int        `json:"totalElements"`
	Number        int        `json:"number"`
	Size          int        `json:"size"`
	TotalPages    int        `json:"totalPages"`
}
