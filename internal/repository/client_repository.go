package repository

import (
	"database/sql"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/model/request"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/model/response"
)

type ClientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) CreateClient(client *request.CreateClient, creatorID uuid.UUID) (response.Client, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return response.Client{}, err
	}
	defer tx.Rollback()

	query := `INSERT INTO clients (name, description)
              VALUES ($1, $2)
              RETURNING id, name, description, created_at, updated_at`

	var created response.Client
	var description sql.NullString

	err = tx.QueryRow(query, client.Name, client.Description).Scan(
		&created.ID,
		&created.Name,
		&description,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return response.Client{}, err
	}

	if description.Valid {
		created.Description = &description.String
	}

	accessQuery := `INSERT INTO user_client_access (user_id, client_id, role) VALUES ($1, $2, 'manager')`
	_, err = tx.Exec(accessQuery, creatorID, created.ID)
	if err != nil {
		return response.Client{}, err
	}

	if err = tx.Commit(); err != nil {
		return response.Client{}, err
	}

	return created, nil
}

func (r *ClientRepository) GetAll() (*[]response.Client, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM clients ORDER BY created_at DESC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []response.Client
	for rows.Next() {
		var client response.Client
		var description sql.NullString

		err := rows.Scan(&client.ID, &client.Name, &description, &client.CreatedAt, &client.UpdatedAt)
		if err != nil {
			return nil, err
		}

		if description.Valid {
			client.Description = &description.String
		}

		clients = append(clients, client)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &clients, nil
}

func (r *ClientRepository) GetClientByID(clientID uuid.UUID) (response.Client, error) {
	query := `SELECT id, name, description, created_at, updated_at FROM clients WHERE id = $1`

	var client response.Client
	var description sql.NullString

	err := r.db.QueryRow(query, clientID).Scan(
		&client.ID,
		&client.Name,
		&description,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		return response.Client{}, err
	}

	if description.Valid {
		client.Description = &description.String
	}

	return client, nil
}

func (r *ClientRepository) GetClientWithManagers(clientID uuid.UUID) (response.ClientWithManagers, error) {
	client, err := r.GetClientByID(clientID)
	if err != nil {
		return response.ClientWithManagers{}, err
	}

	managersQuery := `
		SELECT uca.user_id, u.username, uca.role, uca.created_at
		FROM user_client_access uca
		JOIN users u ON u.id = uca.user_id
		WHERE uca.client_id = $1
		ORDER BY uca.created_at ASC`

	rows, err := r.db.Query(managersQuery, clientID)
	if err != nil {
		return response.ClientWithManagers{}, err
	}
	defer rows.Close()

	var managers []response.ClientManager
	for rows.Next() {
		var manager response.ClientManager
		err := rows.Scan(&manager.UserID, &manager.Username, &manager.Role, &manager.JoinedAt)
		if err != nil {
			return response.ClientWithManagers{}, err
		}
		managers = append(managers, manager)
	}

	return response.ClientWithManagers{
		ID:          client.ID,
		Name:        client.Name,
		Description: client.Description,
		CreatedAt:   client.CreatedAt,
		UpdatedAt:   client.UpdatedAt,
		Managers:    managers,
	}, nil
}

func (r *ClientRepository) UpdateClient(clientID uuid.UUID, client *request.UpdateClient) (response.Client, error) {
	query := `UPDATE clients
              SET name = $1, description = $2, updated_at = CURRENT_TIMESTAMP
              WHERE id = $3
              RETURNING id, name, description, created_at, updated_at`

	var updated response.Client
	var description sql.NullString

	err := r.db.QueryRow(query, client.Name, client.Description, clientID).Scan(
		&updated.ID,
		&updated.Name,
		&description,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		return response.Client{}, err
	}

	if description.Valid {
		updated.Description = &description.String
	}

	return updated, nil
}

func (r *ClientRepository) DeleteClient(clientID uuid.UUID) error {
	query := `DELETE FROM clients WHERE id = $1`
	result, err := r.db.Exec(query, clientID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("client not found")
	}

	return nil
}

func (r *ClientRepository) GetUserClients(userID uuid.UUID) (response.UserClients, error) {
	query := `
		SELECT c.id, c.name, c.description, uca.role, uca.created_at
		FROM user_client_access uca
		JOIN clients c ON c.id = uca.client_id
		WHERE uca.user_id = $1
		ORDER BY uca.created_at ASC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return response.UserClients{}, err
	}
	defer rows.Close()

	var clients []response.UserClientAccess
	for rows.Next() {
		var client response.UserClientAccess
		var description sql.NullString
		err := rows.Scan(&client.ID, &client.Name, &description, &client.Role, &client.JoinedAt)
		if err != nil {
			return response.UserClients{}, err
		}

		if description.Valid {
			client.Description = &description.String
		}

		clients = append(clients, client)
	}

	return response.UserClients{
		UserID:  userID,
		Clients: clients,
	}, nil
}

func (r *ClientRepository) AddManagerToClient(clientID, userID uuid.UUID, role string) error {
	query := `INSERT INTO user_client_access (user_id, client_id, role) VALUES ($1, $2, $3)`
	_, err := r.db.Exec(query, userID, clientID, role)
	return err
}

func (r *ClientRepository) RemoveManagerFromClient(clientID, userID uuid.UUID) error {
	query := `DELETE FROM user_client_access WHERE client_id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, clientID, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("manager access not found")
	}

	return nil
}

func (r *ClientRepository) UpdateManagerRole(clientID, userID uuid.UUID, role string) error {
	query := `UPDATE user_client_access SET role = $1 WHERE client_id = $2 AND user_id = $3`
	result, err := r.db.Exec(query, role, clientID, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return fmt.Errorf("manager access not found")
	}

	return nil
}

func (r *ClientRepository) CheckUserAccess(clientID, userID uuid.UUID) (string, error) {
	query := `SELECT role FROM user_client_access WHERE client_id = $1 AND user_id = $2`
	var role string
	err := r.db.QueryRow(query, clientID, userID).Scan(&role)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", fmt.Errorf("user does not have access to this client")
		}
		return "", err
	}
	return role, nil
}

func (r *ClientRepository) IsUserClientManager(clientID, userID uuid.UUID) (bool, error) {
	role, err := r.CheckUserAccess(clientID, userID)
	if err != nil {
		return false, err
	}
	return role == "manager", nil
}
