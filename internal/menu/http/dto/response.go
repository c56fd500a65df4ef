package dto

import (
	"time"

	menuDomain "github.com/allisson/gatekeeper/internal/menu/domain"
)

// MenuResponse represents a menu entry in API responses.
type MenuResponse struct {
	ID          string    `json:"id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	ParentID    *string   `json:"parent_id"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListMenusResponse wraps a workspace's menu entries in display order.
type ListMenusResponse struct {
	Menus []MenuResponse `json:"menus"`
}

// MapMenuToResponse converts a domain menu to its API representation.
func MapMenuToResponse(menu *menuDomain.Menu) MenuResponse {
	response := MenuResponse{
		ID:          menu.ID.String(),
		WorkspaceID: menu.WorkspaceID.String(),
		Name:        menu.Name,
		Path:        menu.Path,
		Position:    menu.Position,
		CreatedAt:   menu.CreatedAt,
	}
	if menu.ParentID != nil {
		parentID := menu.ParentID.String()
		response.ParentID = &parentID
	}
	return response
}

// MapMenusToListResponse converts domain menus to their API representation.
func MapMenusToListResponse(menus []*menuDomain.Menu) ListMenusResponse {
	response := ListMenusResponse{Menus: make([]MenuResponse, 0, len(menus))}
	for _, menu := range menus {
		response.Menus = append(response.Menus, MapMenuToResponse(menu))
	}
	return response
}
