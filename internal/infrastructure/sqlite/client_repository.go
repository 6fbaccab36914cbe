package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/abcall/clients/internal/core/domain"
	"github.com/abcall/clients/internal/core/repository"
)

const collaborator = "sqlite client repository"

const clientColumns = `id, perfil, id_type, legal_name, id_number, address, type_document_rep,
	id_rep_lega, name_rep, last_name_rep, email_rep, plan_type, cellphone, created_at, updated_at`

type clientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Get(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client WHERE id = ?`

	var client domain.Client
	err := r.db.GetContext(ctx, &client, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewCollaboratorError(collaborator, fmt.Errorf("failed to find client: %w", err))
	}
	return &client, nil
}

func (r *clientRepository) GetAll(ctx context.Context) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM client ORDER BY legal_name, created_at`

	clients := []*domain.Client{}
	if err := r.db.SelectContext(ctx, &clients, query); err != nil {
		return nil, domain.NewCollaboratorError(collaborator, fmt.Errorf("failed to list clients: %w", err))
	}
	return clients, nil
}

func (r *clientRepository) Add(ctx context.Context, data domain.ClientData) (*domain.Client, error) {
	client := domain.NewClient(data)

	query := `
		INSERT INTO client (` + clientColumns + `)
		VALUES (:id, :perfil, :id_type, :legal_name, :id_number, :address, :type_document_rep,
			:id_rep_lega, :name_rep, :last_name_rep, :email_rep, :plan_type, :cellphone,
			:created_at, :updated_at)
	`
	if _, err := r.db.NamedExecContext(ctx, query, client); err != nil {
		return nil, domain.NewCollaboratorError(collaborator, fmt.Errorf("failed to create client: %w", err))
	}
	return client, nil
}

func (r *clientRepository) Update(ctx context.Context, id string, data domain.ClientData) (*domain.Client, error) {
	known := data.Known()

	sets := make([]string, 0, len(known)+1)
	args := make([]any, 0, len(known)+2)
	// Field names come from the domain allowlist, never from the payload itself
	for _, field := range known.Keys() {
		sets = append(sets, field+" = ?")
		args = append(args, known[field])
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, domain.Now(), id)

	query := `UPDATE client SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewCollaboratorError(collaborator, fmt.Errorf("failed to update client: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, domain.NewCollaboratorError(collaborator, fmt.Errorf("failed to get rows affected: %w", err))
	}
	if rows == 0 {
		return nil, nil
	}

	return r.Get(ctx, id)
}

func (r *clientRepository) Remove(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM client WHERE id = ?`, id)
	if err != nil {
		return false, domain.NewCollaboratorError(collaborator, fmt.Errorf("failed to delete client: %w", err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, domain.NewCollaboratorError(collaborator, fmt.Errorf("failed to get rows affected: %w", err))
	}
	return rows > 0, nil
}
