package client

import (
	"fmt"

	"github.com/gofrs/uuid"

	"github.com/imperia-dev/imperia-data-insight-sub000/internal/model/request"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/model/response"
	"github.com/imperia-dev/imperia-data-insight-sub000/internal/repository"
)

type ClientService struct {
	Repo     *repository.ClientRepository
	UserRepo *repository.UserRepository
}

func NewClientService(repo *repository.ClientRepository, userRepo *repository.UserRepository) *ClientService {
	return &ClientService{
		Repo:     repo,
		UserRepo: userRepo,
	}
}

func (s *ClientService) checkAccess(clientID, userID uuid.UUID) (bool, string, error) {
	isSuperAdmin, err := s.UserRepo.IsUserSuperAdmin(userID)
	if err != nil {
		return false, "", fmt.Errorf("failed to check super admin status: %w", err)
	}

	if isSuperAdmin {
		return true, "super_admin", nil
	}

	role, err := s.Repo.CheckUserAccess(clientID, userID)
	if err != nil {
		return false, "", err
	}

	return true, role, nil
}

func (s *ClientService) CreateClient(client *request.CreateClient, creatorID uuid.UUID) (response.Client, error) {
	_, err := s.UserRepo.GetUserById(creatorID)
	if err != nil {
		return response.Client{}, fmt.Errorf("creator not found: %w", err)
	}

	return s.Repo.CreateClient(client, creatorID)
}

func (s *ClientService) GetAll() (*[]response.Client, error) {
	clients, err := s.Repo.GetAll()
	if err != nil {
		return &[]response.Client{}, fmt.Errorf("failed to get clients: %w", err)
	}

	return clients, nil
}

func (s *ClientService) GetClientByID(clientID uuid.UUID, userID uuid.UUID) (response.Client, error) {
	hasAccess, _, err := s.checkAccess(clientID, userID)
	if err != nil {
		return response.Client{}, fmt.Errorf("access check failed: %w", err)
	}
	if !hasAccess {
		return response.Client{}, fmt.Errorf("access denied")
	}

	return s.Repo.GetClientByID(clientID)
}

func (s *ClientService) GetClientWithManagers(clientID uuid.UUID, userID uuid.UUID) (response.ClientWithManagers, error) {
	hasAccess, _, err := s.checkAccess(clientID, userID)
	if err != nil {
		return response.ClientWithManagers{}, fmt.Errorf("access check failed: %w", err)
	}
	if !hasAccess {
		return response.ClientWithManagers{}, fmt.Errorf("access denied")
	}

	return s.Repo.GetClientWithManagers(clientID)
}

func (s *ClientService) UpdateClient(clientID uuid.UUID, client *request.UpdateClient, userID uuid.UUID) (response.Client, error) {
	hasAccess, role, err := s.checkAccess(clientID, userID)
	if err != nil {
		return response.Client{}, fmt.Errorf("access check failed: %w", err)
	}
	if !hasAccess {
		return response.Client{}, fmt.Errorf("access denied")
	}

	if role != "manager" && role != "super_admin" {
		return response.Client{}, fmt.Errorf("only managers can update client")
	}

	return s.Repo.UpdateClient(clientID, client)
}

func (s *ClientService) DeleteClient(clientID uuid.UUID, userID uuid.UUID) error {
	hasAccess, role, err := s.checkAccess(clientID, userID)
	if err != nil {
		return fmt.Errorf("access check failed: %w", err)
	}
	if !hasAccess {
		return fmt.Errorf("access denied")
	}

	if role != "manager" && role != "super_admin" {
		return fmt.Errorf("only managers can delete client")
	}

	return s.Repo.DeleteClient(clientID)
}

func (s *ClientService) GetUserClients(userID uuid.UUID) (response.UserClients, error) {
	return s.Repo.GetUserClients(userID)
}

func (s *ClientService) AddManagerToClient(clientID uuid.UUID, addReq *request.AddManagerToClient, adminUserID uuid.UUID) error {
	hasAccess, role, err := s.checkAccess(clientID, adminUserID)
	if err != nil {
		return fmt.Errorf("access check failed: %w", err)
	}
	if !hasAccess {
		return fmt.Errorf("access denied")
	}

	if role != "manager" && role != "super_admin" {
		return fmt.Errorf("only managers can add users to client")
	}

	userToAddID, err := uuid.FromString(addReq.UserID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	_, err = s.UserRepo.GetUserById(userToAddID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	_, err = s.Repo.CheckUserAccess(clientID, userToAddID)
	if err == nil {
		return fmt.Errorf("user is already assigned to this client")
	}

	if addReq.Role != "manager" && addReq.Role != "member" && addReq.Role != "viewer" {
		return fmt.Errorf("invalid role: must be 'manager', 'member', or 'viewer'")
	}

	return s.Repo.AddManagerToClient(clientID, userToAddID, addReq.Role)
}

func (s *ClientService) RemoveManagerFromClient(clientID, userToRemoveID, adminUserID uuid.UUID) error {
	hasAccess, role, err := s.checkAccess(clientID, adminUserID)
	if err != nil {
		return fmt.Errorf("access check failed: %w", err)
	}
	if !hasAccess {
		return fmt.Errorf("access denied")
	}

	if role != "manager" && role != "super_admin" {
		return fmt.Errorf("only managers can remove users from client")
	}

	if role == "manager" && adminUserID == userToRemoveID {
		clientWithManagers, err := s.Repo.GetClientWithManagers(clientID)
		if err != nil {
			return fmt.Errorf("failed to get client managers: %w", err)
		}

		managerCount := 0
		for _, manager := range clientWithManagers.Managers {
			if manager.Role == "manager" {
				managerCount++
			}
		}

		if managerCount == 1 {
			return fmt.Errorf("cannot remove the only manager from client")
		}
	}

	return s.Repo.RemoveManagerFromClient(clientID, userToRemoveID)
}

func (s *ClientService) UpdateManagerRole(clientID, userToUpdateID uuid.UUID, role string, adminUserID uuid.UUID) error {
	hasAccess, userRole, err := s.checkAccess(clientID, adminUserID)
	if err != nil {
		return fmt.Errorf("access check failed: %w", err)
	}
	if !hasAccess {
		return fmt.Errorf("access denied")
	}

	if userRole != "manager" && userRole != "super_admin" {
		return fmt.Errorf("only managers can update user roles")
	}

	if role != "manager" && role != "member" && role != "viewer" {
		return fmt.Errorf("invalid role: must be 'manager', 'member', or 'viewer'")
	}

	if userRole == "manager" && adminUserID == userToUpdateID && role != "manager" {
		clientWithManagers, err := s.Repo.GetClientWithManagers(clientID)
		if err != nil {
			return fmt.Errorf("failed to get client managers: %w", err)
		}

		managerCount := 0
		for _, manager := range clientWithManagers.Managers {
			if manager.Role == "manager" {
				managerCount++
			}
		}

		if managerCount == 1 {
			return fmt.Errorf("cannot demote the only manager from client")
		}
	}

	return s.Repo.UpdateManagerRole(clientID, userToUpdateID, role)
}

func (s *ClientService) CheckUserAccess(clientID, userID uuid.UUID) (string, error) {
	_, role, err := s.checkAccess(clientID, userID)
	return role, err
}

func (s *ClientService) IsUserClientManager(clientID, userID uuid.UUID) (bool, error) {
	_, role, err := s.checkAccess(clientID, userID)
	if err != nil {
		return false, err
	}
	return role == "manager" || role == "super_admin", nil
}
