package dto

import (
	"time"

	"github.com/abcall/clients/internal/core/domain"
)

// CreateClientRequest represents the client creation request
type CreateClientRequest struct {
	Perfil          string `json:"perfil" binding:"required"`
	IDType          string `json:"id_type" binding:"required,oneof=cedula passport cedula_extranjeria NIT"`
	LegalName       string `json:"legal_name" binding:"required"`
	IDNumber        string `json:"id_number" binding:"required"`
	Address         string `json:"address" binding:"required"`
	TypeDocumentRep string `json:"type_document_rep" binding:"required,oneof=cedula passport cedula_extranjeria"`
	IDRepLega       string `json:"id_rep_lega" binding:"required"`
	NameRep         string `json:"name_rep" binding:"required"`
	LastNameRep     string `json:"last_name_rep" binding:"required"`
	EmailRep        string `json:"email_rep" binding:"required,client_email"`
	PlanType        string `json:"plan_type" binding:"required,oneof=emprendedor empresario empresario_plus"`
	Cellphone       string `json:"cellphone"` // Optional
}

// ToData converts the request into client fields
func (r CreateClientRequest) ToData() domain.ClientData {
	return domain.ClientData{
		domain.FieldPerfil:          r.Perfil,
		domain.FieldIDType:          r.IDType,
		domain.FieldLegalName:       r.LegalName,
		domain.FieldIDNumber:        r.IDNumber,
		domain.FieldAddress:         r.Address,
		domain.FieldTypeDocumentRep: r.TypeDocumentRep,
		domain.FieldIDRepLega:       r.IDRepLega,
		domain.FieldNameRep:         r.NameRep,
		domain.FieldLastNameRep:     r.LastNameRep,
		domain.FieldEmailRep:        r.EmailRep,
		domain.FieldPlanType:        r.PlanType,
		domain.FieldCellphone:       r.Cellphone,
	}
}

// ClientResponse represents a client
type ClientResponse struct {
	ID              string    `json:"id"`
	Perfil          string    `json:"perfil"`
	IDType          string    `json:"id_type"`
	LegalName       string    `json:"legal_name"`
	IDNumber        string    `json:"id_number"`
	Address         string    `json:"address"`
	TypeDocumentRep string    `json:"type_document_rep"`
	IDRepLega       string    `json:"id_rep_lega"`
	NameRep         string    `json:"name_rep"`
	LastNameRep     string    `json:"last_name_rep"`
	EmailRep        string    `json:"email_rep"`
	PlanType        string    `json:"plan_type"`
	Cellphone       string    `json:"cellphone"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ClientShortResponse is the public, reduced view of a client
type ClientShortResponse struct {
	ID        string `json:"id"`
	LegalName string `json:"legal_name"`
}

// ToClientResponse maps a domain client to its response shape
func ToClientResponse(client *domain.Client) ClientResponse {
	return ClientResponse{
		ID:              client.ID,
		Perfil:          client.Perfil,
		IDType:          client.IDType,
		LegalName:       client.LegalName,
		IDNumber:        client.IDNumber,
		Address:         client.Address,
		TypeDocumentRep: client.TypeDocumentRep,
		IDRepLega:       client.IDRepLega,
		NameRep:         client.NameRep,
		LastNameRep:     client.LastNameRep,
		EmailRep:        client.EmailRep,
		PlanType:        client.PlanType,
		Cellphone:       client.Cellphone,
		CreatedAt:       client.CreatedAt,
		UpdatedAt:       client.UpdatedAt,
	}
}

// ToClientShortResponse maps a domain client to its public view
func ToClientShortResponse(client *domain.Client) ClientShortResponse {
	return ClientShortResponse{ID: client.ID, LegalName: client.LegalName}
}
