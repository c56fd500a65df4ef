package dto

import (
	"time"

	workspaceDomain "github.com/allisson/gatekeeper/internal/workspace/domain"
)

// WorkspaceResponse represents a workspace in API responses.
type WorkspaceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ListWorkspacesResponse wraps a page of workspaces.
type ListWorkspacesResponse struct {
	Workspaces []WorkspaceResponse `json:"workspaces"`
}

// MapWorkspaceToResponse converts a domain workspace to its API representation.
func MapWorkspaceToResponse(workspace *workspaceDomain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:        workspace.ID.String(),
		Name:      workspace.Name,
		IsActive:  workspace.IsActive,
		CreatedAt: workspace.CreatedAt,
	}
}

// MapWorkspacesToListResponse converts a page of domain workspaces to its API representation.
func MapWorkspacesToListResponse(workspaces []*workspaceDomain.Workspace) ListWorkspacesResponse {
	response := ListWorkspacesResponse{Workspaces: make([]WorkspaceResponse, 0, len(workspaces))}
	for _, workspace := range workspaces {
		response.Workspaces = append(response.Workspaces, MapWorkspaceToResponse(workspace))
	}
	return response
}
