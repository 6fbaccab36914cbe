package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Client field names as they appear in request payloads and storage columns.
const (
	FieldPerfil          = "perfil"
	FieldIDType          = "id_type"
	FieldLegalName       = "legal_name"
	FieldIDNumber        = "id_number"
	FieldAddress         = "address"
	FieldTypeDocumentRep = "type_document_rep"
	FieldIDRepLega       = "id_rep_lega"
	FieldNameRep         = "name_rep"
	FieldLastNameRep     = "last_name_rep"
	FieldEmailRep        = "email_rep"
	FieldPlanType        = "plan_type"
	FieldCellphone       = "cellphone"
)

// Client is a business customer of the platform together with its legal representative.
type Client struct {
	ID              string    `db:"id" json:"id"` // UUID
	Perfil          string    `db:"perfil" json:"perfil"`
	IDType          string    `db:"id_type" json:"id_type"`
	LegalName       string    `db:"legal_name" json:"legal_name"`
	IDNumber        string    `db:"id_number" json:"id_number"`
	Address         string    `db:"address" json:"address"`
	TypeDocumentRep string    `db:"type_document_rep" json:"type_document_rep"`
	IDRepLega       string    `db:"id_rep_lega" json:"id_rep_lega"`
	NameRep         string    `db:"name_rep" json:"name_rep"`
	LastNameRep     string    `db:"last_name_rep" json:"last_name_rep"`
	EmailRep        string    `db:"email_rep" json:"email_rep"`
	PlanType        string    `db:"plan_type" json:"plan_type"`
	Cellphone       string    `db:"cellphone" json:"cellphone"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// ClientData is a partial or complete set of client fields keyed by field name.
type ClientData map[string]string

// fieldRefs maps every writable field name to its struct member.
func (c *Client) fieldRefs() map[string]*string {
	return map[string]*string{
		FieldPerfil:          &c.Perfil,
		FieldIDType:          &c.IDType,
		FieldLegalName:       &c.LegalName,
		FieldIDNumber:        &c.IDNumber,
		FieldAddress:         &c.Address,
		FieldTypeDocumentRep: &c.TypeDocumentRep,
		FieldIDRepLega:       &c.IDRepLega,
		FieldNameRep:         &c.NameRep,
		FieldLastNameRep:     &c.LastNameRep,
		FieldEmailRep:        &c.EmailRep,
		FieldPlanType:        &c.PlanType,
		FieldCellphone:       &c.Cellphone,
	}
}

// ClientFields returns the writable field names in a stable order.
func ClientFields() []string {
	refs := (&Client{}).fieldRefs()
	fields := make([]string, 0, len(refs))
	for name := range refs {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

// IsClientField reports whether name is a writable client field.
func IsClientField(name string) bool {
	_, ok := (&Client{}).fieldRefs()[name]
	return ok
}

// Now returns the current time at the microsecond precision every store keeps.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// NewClient builds a client with a fresh id from the given data.
// Unknown keys are ignored.
func NewClient(data ClientData) *Client {
	now := Now()
	client := &Client{
		ID:        uuid.New().String(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	client.Apply(data)
	return client
}

// Apply overwrites the fields present in data and reports whether anything was set.
func (c *Client) Apply(data ClientData) bool {
	refs := c.fieldRefs()
	changed := false
	for name, value := range data {
		if ref, ok := refs[name]; ok {
			*ref = value
			changed = true
		}
	}
	return changed
}

// Data returns every writable field of the client.
func (c *Client) Data() ClientData {
	data := make(ClientData)
	for name, ref := range c.fieldRefs() {
		data[name] = *ref
	}
	return data
}

// Known returns the subset of data whose keys are client fields.
func (d ClientData) Known() ClientData {
	known := make(ClientData, len(d))
	for name, value := range d {
		if IsClientField(name) {
			known[name] = value
		}
	}
	return known
}

// Keys returns the field names present in d in a stable order.
func (d ClientData) Keys() []string {
	keys := make([]string, 0, len(d))
	for name := range d {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}
