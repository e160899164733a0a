package dto

import (
	"time"

	"github.com/transfer-desk/backend/internal/domain/entity"
)

// CreateClientRequest represents the request body for client creation.
type CreateClientRequest struct {
	Name string `json:"name" binding:"required"`
}

// RenameClientRequest represents the request body for renaming a client.
type RenameClientRequest struct {
	Name string `json:"name" binding:"required"`
}

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientListResponse represents the response for searching clients.
type ClientListResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// ToClientResponse converts a domain Client entity to a ClientResponse DTO.
func ToClientResponse(client *entity.Client) ClientResponse {
	return ClientResponse{
		ID:        client.ID.String(),
		Name:      client.Name,
		Status:    client.Status.String(),
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

// ToClientListResponse converts a list of clients to a ClientListResponse DTO.
func ToClientListResponse(clients []*entity.Client) ClientListResponse {
	response := ClientListResponse{
		Clients: make([]ClientResponse, 0, len(clients)),
	}
	for _, client := range clients {
		response.Clients = append(response.Clients, ToClientResponse(client))
	}
	return response
}
