package dto

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abcall/clients/internal/core/domain"
)

func validRequest() map[string]any {
	return map[string]any{
		"perfil":            "empresa",
		"id_type":           "NIT",
		"legal_name":        "Acme SAS",
		"id_number":         "900123456",
		"address":           "Calle 1 # 2-3",
		"type_document_rep": "cedula",
		"id_rep_lega":       "1020304050",
		"name_rep":          "Ana",
		"last_name_rep":     "Rojas",
		"email_rep":         "ana.rojas+legal@acme-corp.com.co",
		"plan_type":         "empresario_plus",
	}
}

func bindCreate(t *testing.T, body map[string]any) (CreateClientRequest, error) {
	t.Helper()
	require.NoError(t, RegisterValidators())

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	var req CreateClientRequest
	err = binding.JSON.BindBody(raw, &req)
	return req, err
}

func TestCreateClientRequestValid(t *testing.T) {
	req, err := bindCreate(t, validRequest())
	require.NoError(t, err)

	data := req.ToData()
	assert.Equal(t, "Acme SAS", data[domain.FieldLegalName])
	assert.Equal(t, "", data[domain.FieldCellphone], "cellphone defaults to empty")
	assert.Len(t, data, len(domain.ClientFields()))
}

func TestCreateClientRequestInvalid(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(body map[string]any)
		wantField   string
		wantMessage string
	}{
		{
			name:        "missing legal name",
			mutate:      func(b map[string]any) { delete(b, "legal_name") },
			wantField:   "legal_name",
			wantMessage: "Missing required field: legal_name",
		},
		{
			name: "missing field reported before invalid value",
			mutate: func(b map[string]any) {
				b["id_type"] = "licencia"
				delete(b, "plan_type")
			},
			wantField:   "plan_type",
			wantMessage: "Missing required field: plan_type",
		},
		{
			name:        "bad id type",
			mutate:      func(b map[string]any) { b["id_type"] = "licencia" },
			wantField:   "id_type",
			wantMessage: "Invalid 'id_type' value. Must be one of [cedula, passport, cedula_extranjeria, NIT]",
		},
		{
			name:        "NIT is not a representative document",
			mutate:      func(b map[string]any) { b["type_document_rep"] = "NIT" },
			wantField:   "type_document_rep",
			wantMessage: "Invalid 'type_document_rep' value. Must be one of [cedula, passport, cedula_extranjeria]",
		},
		{
			name:        "bad plan",
			mutate:      func(b map[string]any) { b["plan_type"] = "gratis" },
			wantField:   "plan_type",
			wantMessage: "Invalid 'plan_type' value. Must be one of [emprendedor, empresario, empresario_plus]",
		},
		{
			name:        "bad email",
			mutate:      func(b map[string]any) { b["email_rep"] = "ana@acme" },
			wantField:   "email_rep",
			wantMessage: "Invalid email format",
		},
		{
			name:        "wrong json type",
			mutate:      func(b map[string]any) { b["legal_name"] = 42 },
			wantMessage: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validRequest()
			tt.mutate(body)

			_, err := bindCreate(t, body)
			require.Error(t, err)

			verr := BindingError(err)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Equal(t, tt.wantMessage, verr.Message)
			assert.ErrorIs(t, verr, domain.ErrValidation)
		})
	}
}

func TestParseUpdate(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]any
		want    domain.ClientData
		wantErr string
	}{
		{
			name: "known string fields",
			body: map[string]any{"legal_name": "Acme Global", "cellphone": "3001112233"},
			want: domain.ClientData{"legal_name": "Acme Global", "cellphone": "3001112233"},
		},
		{
			name: "valid email",
			body: map[string]any{"email_rep": "new@acme.co"},
			want: domain.ClientData{"email_rep": "new@acme.co"},
		},
		{name: "empty body", body: map[string]any{}, wantErr: "Request body must contain at least one field"},
		{name: "unknown field", body: map[string]any{"id": "x"}, wantErr: "Unknown field: id"},
		{name: "non string value", body: map[string]any{"legal_name": 7.0}, wantErr: "Field must be a string: legal_name"},
		{name: "bad email", body: map[string]any{"email_rep": "nope"}, wantErr: "Invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUpdate(tt.body)
			if tt.wantErr != "" {
				var verr *domain.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantErr, verr.Message)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegisterValidatorsIsIdempotent(t *testing.T) {
	assert.NoError(t, RegisterValidators())
	assert.NoError(t, RegisterValidators())
}
