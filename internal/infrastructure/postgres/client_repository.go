package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/abcall/clients/internal/core/domain"
	"github.com/abcall/clients/internal/core/repository"
)

const collaborator = "postgres client repository"

const clientColumns = `id, perfil, id_type, legal_name, id_number, address, type_document_rep,
	id_rep_lega, name_rep, last_name_rep, email_rep, plan_type, cellphone, created_at, updated_at`

type clientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Get(ctx context.Context, id string) (*domain.Client, error) {
	rows, err := r.db.pool.Query(ctx, `SELECT `+clientColumns+` FROM client WHERE id = $1`, id)
	if err != nil {
		return nil, domain.NewCollaboratorError(collaborator, fmt.Errorf("failed to find client: %w", err))
	}

	client, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[domain.Client])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewCollaboratorError(collaborator, fmt.Errorf("failed to scan client: %w", err))
	}
	return client, nil
}

func (r *clientRepository) GetAll(ctx context.Context) ([]*domain.Client, error) {
	rows, err := r.db.pool.Query(ctx, `SELECT `+clientColumns+` FROM client ORDER BY legal_name, created_at`)
	if err != nil {
		return nil, domain.NewCollaboratorError(collaborator, fmt.Errorf("failed to list clients: %w", err))
	}

	clients, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[domain.Client])
	if err != nil {
		return nil, domain.NewCollaboratorError(collaborator, fmt.Errorf("failed to scan clients: %w", err))
	}
	return clients, nil
}

func (r *clientRepository) Add(ctx context.Context, data domain.ClientData) (*domain.Client, error) {
	client := domain.NewClient(data)

	query := `
		INSERT INTO client (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.pool.Exec(ctx, query,
		client.ID,
		client.Perfil,
		client.IDType,
		client.LegalName,
		client.IDNumber,
		client.Address,
		client.TypeDocumentRep,
		client.IDRepLega,
		client.NameRep,
		client.LastNameRep,
		client.EmailRep,
		client.PlanType,
		client.Cellphone,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return nil, domain.NewCollaboratorError(collaborator, fmt.Errorf("failed to create client: %w", err))
	}
	return client, nil
}

func (r *clientRepository) Update(ctx context.Context, id string, data domain.ClientData) (*domain.Client, error) {
	known := data.Known()

	sets := make([]string, 0, len(known)+1)
	args := make([]any, 0, len(known)+2)
	for _, field := range known.Keys() {
		args = append(args, known[field])
		sets = append(sets, fmt.Sprintf("%s = $%d", field, len(args)))
	}
	args = append(args, domain.Now())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE client SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))
	tag, err := r.db.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, domain.NewCollaboratorError(collaborator, fmt.Errorf("failed to update client: %w", err))
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}

	return r.Get(ctx, id)
}

func (r *clientRepository) Remove(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.pool.Exec(ctx, `DELETE FROM client WHERE id = $1`, id)
	if err != nil {
		return false, domain.NewCollaboratorError(collaborator, fmt.Errorf("failed to delete client: %w", err))
	}
	return tag.RowsAffected() > 0, nil
}
