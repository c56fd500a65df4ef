package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/gatekeeper/internal/errors"
	menuDomain "github.com/allisson/gatekeeper/internal/menu/domain"
	"github.com/allisson/gatekeeper/internal/testutil"
)

func newMenu(workspaceID uuid.UUID, name, path string, position int) *menuDomain.Menu {
	return &menuDomain.Menu{
		ID:          uuid.Must(uuid.NewV7()),
		WorkspaceID: workspaceID,
		Name:        name,
		Path:        path,
		Position:    position,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestPostgreSQLMenuRepository(t *testing.T) {
	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)

	ctx := context.Background()
	repo := NewPostgreSQLMenuRepository(db)

	t.Run("Create and Get", func(t *testing.T) {
		testutil.CleanupPostgresDB(t, db)
		workspaceID := testutil.CreateTestWorkspace(t, db, "postgres", "payments")

		parent := newMenu(workspaceID, "Reports", "reports", 0)
		require.NoError(t, repo.Create(ctx, parent))

		child := newMenu(workspaceID, "Monthly", "reports/monthly", 1)
		child.ParentID = &parent.ID
		require.NoError(t, repo.Create(ctx, child))

		found, err := repo.Get(ctx, child.ID)
		require.NoError(t, err)
		assert.Equal(t, "reports/monthly", found.Path)
		require.NotNil(t, found.ParentID)
		assert.Equal(t, parent.ID, *found.ParentID)
	})

	t.Run("Create duplicate path", func(t *testing.T) {
		testutil.CleanupPostgresDB(t, db)
		workspaceID := testutil.CreateTestWorkspace(t, db, "postgres", "payments")

		require.NoError(t, repo.Create(ctx, newMenu(workspaceID, "Reports", "reports", 0)))

		err := repo.Create(ctx, newMenu(workspaceID, "Reports Again", "reports", 1))
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("ListByWorkspace follows display order", func(t *testing.T) {
		testutil.CleanupPostgresDB(t, db)
		workspaceID := testutil.CreateTestWorkspace(t, db, "postgres", "payments")

		second := newMenu(workspaceID, "Admin", "admin", 2)
		first := newMenu(workspaceID, "Reports", "reports", 1)
		require.NoError(t, repo.Create(ctx, second))
		require.NoError(t, repo.Create(ctx, first))

		menus, err := repo.ListByWorkspace(ctx, workspaceID)
		require.NoError(t, err)
		require.Len(t, menus, 2)
		assert.Equal(t, "reports", menus[0].Path)
		assert.Equal(t, "admin", menus[1].Path)
	})

	t.Run("Delete cascades to children", func(t *testing.T) {
		testutil.CleanupPostgresDB(t, db)
		workspaceID := testutil.CreateTestWorkspace(t, db, "postgres", "payments")

		parent := newMenu(workspaceID, "Reports", "reports", 0)
		require.NoError(t, repo.Create(ctx, parent))
		child := newMenu(workspaceID, "Monthly", "reports/monthly", 1)
		child.ParentID = &parent.ID
		require.NoError(t, repo.Create(ctx, child))

		require.NoError(t, repo.Delete(ctx, parent.ID))

		_, err := repo.Get(ctx, child.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		err = repo.Delete(ctx, parent.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("DeleteByWorkspace", func(t *testing.T) {
		testutil.CleanupPostgresDB(t, db)
		workspaceID := testutil.CreateTestWorkspace(t, db, "postgres", "payments")
		otherID := testutil.CreateTestWorkspace(t, db, "postgres", "billing")

		require.NoError(t, repo.Create(ctx, newMenu(workspaceID, "Reports", "reports", 0)))
		kept := newMenu(otherID, "Reports", "reports", 0)
		require.NoError(t, repo.Create(ctx, kept))

		require.NoError(t, repo.DeleteByWorkspace(ctx, workspaceID))

		menus, err := repo.ListByWorkspace(ctx, workspaceID)
		require.NoError(t, err)
		assert.Empty(t, menus)

		menus, err = repo.ListByWorkspace(ctx, otherID)
		require.NoError(t, err)
		assert.Len(t, menus, 1)
	})
}
