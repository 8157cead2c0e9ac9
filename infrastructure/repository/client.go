package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/toystore-admin-api/infrastructure/database/postgres"
	"github.com/vfg2006/toystore-admin-api/internal/domain"
)

const (
	clientsTable     = "clients"
	clientSalesTable = "client_sales"
)

// ErrNotFound indica que o registro procurado não existe
var ErrNotFound = errors.New("registro não encontrado")

// IDGenerator fornece IDs únicos para novos clientes
type IDGenerator interface {
	NextID() string
}

type ClientRepository interface {
	ListClients(ctx context.Context) ([]domain.Client, error)
	GetClientByID(ctx context.Context, id string) (*domain.Client, error)
	CreateClient(ctx context.Context, req domain.CreateClientRequest) (*domain.Client, error)
	UpdateClient(ctx context.Context, id string, req domain.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error
	ImportClients(ctx context.Context, clients []domain.Client) error
}

type clientRepository struct {
	conn postgres.Conn
	ids  IDGenerator
}

func NewClientRepository(conn postgres.Conn, ids IDGenerator) ClientRepository {
	return &clientRepository{
		conn: conn,
		ids:  ids,
	}
}

func (r *clientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	query, args, err := squirrel.
		Select("c.id", "c.nome_completo", "c.email", "to_char(c.nascimento, 'YYYY-MM-DD')").
		From(clientsTable + " c").
		OrderBy("c.posicao ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	indexByID := make(map[string]int)
	for rows.Next() {
		client := domain.Client{Vendas: make([]domain.Sale, 0)}
		if err := rows.Scan(&client.ID, &client.NomeCompleto, &client.Email, &client.Nascimento); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear cliente")
		}

		indexByID[client.ID] = len(clients)
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	sales, err := r.listSales(ctx, r.conn, nil)
	if err != nil {
		return nil, err
	}

	for _, sale := range sales {
		i, exists := indexByID[sale.clientID]
		if !exists {
			continue
		}
		clients[i].Vendas = append(clients[i].Vendas, sale.Sale)
	}

	return clients, nil
}

func (r *clientRepository) GetClientByID(ctx context.Context, id string) (*domain.Client, error) {
	return r.getClient(ctx, r.conn, id)
}

func (r *clientRepository) CreateClient(ctx context.Context, req domain.CreateClientRequest) (*domain.Client, error) {
	client := &domain.Client{
		ID:           r.ids.NextID(),
		NomeCompleto: req.NomeCompleto,
		Email:        req.Email,
		Nascimento:   req.Nascimento,
		Vendas:       make([]domain.Sale, 0),
	}

	if err := r.insertClient(ctx, r.conn, *client); err != nil {
		return nil, err
	}

	return client, nil
}

func (r *clientRepository) UpdateClient(ctx context.Context, id string, req domain.UpdateClientRequest) (*domain.Client, error) {
	var updated *domain.Client

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		client, err := r.getClient(ctx, tx, id)
		if err != nil {
			return err
		}

		req.Apply(client)

		query, args, err := squirrel.
			Update(clientsTable).
			Set("nome_completo", client.NomeCompleto).
			Set("email", client.Email).
			Set("nascimento", client.Nascimento).
			Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP")).
			Where(squirrel.Eq{"id": id}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir a query de atualização")
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return errors.Wrap(err, "erro ao atualizar cliente")
		}

		updated = client
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *clientRepository) DeleteClient(ctx context.Context, id string) error {
	query, args, err := squirrel.
		Delete(clientsTable).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query de remoção")
	}

	// As vendas são removidas em cascata
	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return errors.Wrap(err, "erro ao remover cliente")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "erro ao verificar remoção")
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// ImportClients grava os clientes com seus IDs e vendas, na ordem recebida
func (r *clientRepository) ImportClients(ctx context.Context, clients []domain.Client) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for _, client := range clients {
			if err := r.insertClient(ctx, tx, client); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *clientRepository) insertClient(ctx context.Context, q postgres.Queryer, client domain.Client) error {
	query, args, err := squirrel.
		Insert(clientsTable).
		Columns("id", "nome_completo", "email", "nascimento").
		Values(client.ID, client.NomeCompleto, client.Email, client.Nascimento).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query de inserção")
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "erro ao inserir cliente %s", client.ID)
	}

	if len(client.Vendas) == 0 {
		return nil
	}

	salesQuery := squirrel.
		Insert(clientSalesTable).
		Columns("client_id", "data", "valor").
		PlaceholderFormat(squirrel.Dollar)

	for _, venda := range client.Vendas {
		salesQuery = salesQuery.Values(client.ID, venda.Data, venda.Valor)
	}

	query, args, err = salesQuery.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir a query de vendas")
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "erro ao inserir vendas do cliente %s", client.ID)
	}

	return nil
}

func (r *clientRepository) getClient(ctx context.Context, q postgres.Queryer, id string) (*domain.Client, error) {
	query, args, err := squirrel.
		Select("c.id", "c.nome_completo", "c.email", "to_char(c.nascimento, 'YYYY-MM-DD')").
		From(clientsTable + " c").
		Where(squirrel.Eq{"c.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	client := domain.Client{}
	err = q.QueryRowContext(ctx, query, args...).Scan(&client.ID, &client.NomeCompleto, &client.Email, &client.Nascimento)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao escanear cliente")
	}

	sales, err := r.listSales(ctx, q, &id)
	if err != nil {
		return nil, err
	}

	client.Vendas = make([]domain.Sale, 0, len(sales))
	for _, sale := range sales {
		client.Vendas = append(client.Vendas, sale.Sale)
	}

	return &client, nil
}

type clientSale struct {
	clientID string
	domain.Sale
}

func (r *clientRepository) listSales(ctx context.Context, q postgres.Queryer, clientID *string) ([]clientSale, error) {
	queryBuilder := squirrel.
		Select("cs.client_id", "to_char(cs.data, 'YYYY-MM-DD')", "cs.valor").
		From(clientSalesTable + " cs").
		OrderBy("cs.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if clientID != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"cs.client_id": *clientID})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de vendas")
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar vendas")
	}
	defer rows.Close()

	sales := make([]clientSale, 0)
	for rows.Next() {
		var (
			sale  clientSale
			valor decimal.Decimal
		)
		if err := rows.Scan(&sale.clientID, &sale.Data, &valor); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear venda")
		}
		sale.Valor = valor
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de vendas")
	}

	return sales, nil
}
