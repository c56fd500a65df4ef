package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authzDomain "github.com/allisson/gatekeeper/internal/authz/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

type mockMembershipRepository struct {
	mock.Mock
}

func (m *mockMembershipRepository) Create(ctx context.Context, membership *authzDomain.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *mockMembershipRepository) Delete(ctx context.Context, workspaceID, userID uuid.UUID, role string) error {
	args := m.Called(ctx, workspaceID, userID, role)
	return args.Error(0)
}

func (m *mockMembershipRepository) ListRolesByUser(
	ctx context.Context,
	workspaceID, userID uuid.UUID,
) ([]string, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockMembershipRepository) DeleteByWorkspace(ctx context.Context, workspaceID uuid.UUID) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

type mockWorkspaceChecker struct {
	mock.Mock
}

func (m *mockWorkspaceChecker) Exists(ctx context.Context, workspaceID uuid.UUID) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

type mockUserChecker struct {
	mock.Mock
}

func (m *mockUserChecker) Exists(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// knownUsers builds a user checker that accepts every lookup.
func knownUsers() *mockUserChecker {
	users := new(mockUserChecker)
	users.On("Exists", mock.Anything, mock.Anything).Return(nil)
	return users
}

func TestPolicyUseCase_GrantPermission(t *testing.T) {
	workspaceID := uuid.Must(uuid.NewV7())
	subject := authzDomain.RoleSubject("editor")
	resource, err := authzDomain.NewResource(authzDomain.ResourceAPI, workspaceID, "collections")
	require.NoError(t, err)

	t.Run("records a validated rule fact", func(t *testing.T) {
		ruleRepo := new(mockRuleRepository)
		membershipRepo := new(mockMembershipRepository)
		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", mock.Anything, workspaceID).Return(nil)
		ruleRepo.On("Create", mock.Anything, mock.MatchedBy(func(rule *authzDomain.Rule) bool {
			return rule.WorkspaceID == workspaceID &&
				rule.Subject == subject &&
				rule.Resource == resource &&
				rule.Action == authzDomain.ActionRead &&
				rule.ID != uuid.Nil
		})).Return(nil)

		useCase := NewPolicyUseCase(ruleRepo, membershipRepo, workspaces, knownUsers())
		err := useCase.GrantPermission(context.Background(), workspaceID, subject, resource, authzDomain.ActionRead)

		require.NoError(t, err)
		ruleRepo.AssertExpectations(t)
		workspaces.AssertExpectations(t)
	})

	t.Run("rejects resource from another workspace", func(t *testing.T) {
		otherWorkspaceID := uuid.Must(uuid.NewV7())
		foreignResource, err := authzDomain.NewResource(authzDomain.ResourceAPI, otherWorkspaceID, "collections")
		require.NoError(t, err)

		ruleRepo := new(mockRuleRepository)
		useCase := NewPolicyUseCase(ruleRepo, new(mockMembershipRepository), new(mockWorkspaceChecker), knownUsers())

		err = useCase.GrantPermission(context.Background(), workspaceID, subject, foreignResource, authzDomain.ActionRead)
		assert.ErrorIs(t, err, authzDomain.ErrInvalidResource)
		ruleRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects unknown action", func(t *testing.T) {
		ruleRepo := new(mockRuleRepository)
		useCase := NewPolicyUseCase(ruleRepo, new(mockMembershipRepository), new(mockWorkspaceChecker), knownUsers())

		err := useCase.GrantPermission(context.Background(), workspaceID, subject, resource, "publish")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		ruleRepo.AssertNotCalled(t, "Create")
	})

	t.Run("wildcard action is grantable", func(t *testing.T) {
		ruleRepo := new(mockRuleRepository)
		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", mock.Anything, workspaceID).Return(nil)
		ruleRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		useCase := NewPolicyUseCase(ruleRepo, new(mockMembershipRepository), workspaces, knownUsers())
		err := useCase.GrantPermission(context.Background(), workspaceID, subject, resource, authzDomain.ActionAll)

		require.NoError(t, err)
		ruleRepo.AssertExpectations(t)
	})

	t.Run("rejects unknown workspace", func(t *testing.T) {
		ruleRepo := new(mockRuleRepository)
		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", mock.Anything, workspaceID).Return(apperrors.ErrNotFound)

		useCase := NewPolicyUseCase(ruleRepo, new(mockMembershipRepository), workspaces, knownUsers())
		err := useCase.GrantPermission(context.Background(), workspaceID, subject, resource, authzDomain.ActionRead)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		ruleRepo.AssertNotCalled(t, "Create")
	})

	t.Run("user grant verifies the user", func(t *testing.T) {
		userID := uuid.Must(uuid.NewV7())
		ruleRepo := new(mockRuleRepository)
		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", mock.Anything, workspaceID).Return(nil)
		users := new(mockUserChecker)
		users.On("Exists", mock.Anything, userID).Return(nil)
		ruleRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		useCase := NewPolicyUseCase(ruleRepo, new(mockMembershipRepository), workspaces, users)
		err := useCase.GrantPermission(
			context.Background(), workspaceID, authzDomain.UserSubject(userID), resource, authzDomain.ActionRead)

		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("grant to unknown user reports not found", func(t *testing.T) {
		userID := uuid.Must(uuid.NewV7())
		ruleRepo := new(mockRuleRepository)
		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", mock.Anything, workspaceID).Return(nil)
		users := new(mockUserChecker)
		users.On("Exists", mock.Anything, userID).Return(apperrors.ErrNotFound)

		useCase := NewPolicyUseCase(ruleRepo, new(mockMembershipRepository), workspaces, users)
		err := useCase.GrantPermission(
			context.Background(), workspaceID, authzDomain.UserSubject(userID), resource, authzDomain.ActionRead)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		ruleRepo.AssertNotCalled(t, "Create")
	})

	t.Run("role grant skips the user check", func(t *testing.T) {
		ruleRepo := new(mockRuleRepository)
		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", mock.Anything, workspaceID).Return(nil)
		users := new(mockUserChecker)
		ruleRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		useCase := NewPolicyUseCase(ruleRepo, new(mockMembershipRepository), workspaces, users)
		err := useCase.GrantPermission(context.Background(), workspaceID, subject, resource, authzDomain.ActionRead)

		require.NoError(t, err)
		users.AssertNotCalled(t, "Exists")
	})
}

func TestPolicyUseCase_RevokePermission(t *testing.T) {
	workspaceID := uuid.Must(uuid.NewV7())
	subject := authzDomain.UserSubject(uuid.Must(uuid.NewV7()))
	resource, err := authzDomain.NewResource(authzDomain.ResourceData, workspaceID, "42")
	require.NoError(t, err)

	t.Run("removes an existing grant", func(t *testing.T) {
		ruleRepo := new(mockRuleRepository)
		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", mock.Anything, workspaceID).Return(nil)
		ruleRepo.On("Delete", mock.Anything, workspaceID, subject, resource, authzDomain.ActionWrite).Return(nil)

		useCase := NewPolicyUseCase(ruleRepo, new(mockMembershipRepository), workspaces, knownUsers())
		err := useCase.RevokePermission(context.Background(), workspaceID, subject, resource, authzDomain.ActionWrite)

		require.NoError(t, err)
		ruleRepo.AssertExpectations(t)
	})

	t.Run("absent grant reports not found", func(t *testing.T) {
		ruleRepo := new(mockRuleRepository)
		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", mock.Anything, workspaceID).Return(nil)
		ruleRepo.On("Delete", mock.Anything, workspaceID, subject, resource, authzDomain.ActionWrite).
			Return(authzDomain.ErrRuleNotFound)

		useCase := NewPolicyUseCase(ruleRepo, new(mockMembershipRepository), workspaces, knownUsers())
		err := useCase.RevokePermission(context.Background(), workspaceID, subject, resource, authzDomain.ActionWrite)

		assert.ErrorIs(t, err, authzDomain.ErrRuleNotFound)
	})
}

func TestPolicyUseCase_AssignRole(t *testing.T) {
	workspaceID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("records a membership edge", func(t *testing.T) {
		membershipRepo := new(mockMembershipRepository)
		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", mock.Anything, workspaceID).Return(nil)
		membershipRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *authzDomain.Membership) bool {
			return m.WorkspaceID == workspaceID && m.UserID == userID && m.Role == "editor"
		})).Return(nil)

		useCase := NewPolicyUseCase(new(mockRuleRepository), membershipRepo, workspaces, knownUsers())
		err := useCase.AssignRole(context.Background(), workspaceID, userID, "editor")

		require.NoError(t, err)
		membershipRepo.AssertExpectations(t)
	})

	t.Run("unknown user reports not found", func(t *testing.T) {
		membershipRepo := new(mockMembershipRepository)
		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", mock.Anything, workspaceID).Return(nil)
		users := new(mockUserChecker)
		users.On("Exists", mock.Anything, userID).Return(apperrors.ErrNotFound)

		useCase := NewPolicyUseCase(new(mockRuleRepository), membershipRepo, workspaces, users)
		err := useCase.AssignRole(context.Background(), workspaceID, userID, "editor")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		membershipRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects blank role", func(t *testing.T) {
		membershipRepo := new(mockMembershipRepository)
		useCase := NewPolicyUseCase(new(mockRuleRepository), membershipRepo, new(mockWorkspaceChecker), knownUsers())

		err := useCase.AssignRole(context.Background(), workspaceID, userID, "   ")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		membershipRepo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects nil user id", func(t *testing.T) {
		membershipRepo := new(mockMembershipRepository)
		useCase := NewPolicyUseCase(new(mockRuleRepository), membershipRepo, new(mockWorkspaceChecker), knownUsers())

		err := useCase.AssignRole(context.Background(), workspaceID, uuid.Nil, "editor")
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		membershipRepo.AssertNotCalled(t, "Create")
	})
}

func TestPolicyUseCase_UnassignRole(t *testing.T) {
	workspaceID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	t.Run("removes a membership edge", func(t *testing.T) {
		membershipRepo := new(mockMembershipRepository)
		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", mock.Anything, workspaceID).Return(nil)
		membershipRepo.On("Delete", mock.Anything, workspaceID, userID, "editor").Return(nil)

		useCase := NewPolicyUseCase(new(mockRuleRepository), membershipRepo, workspaces, knownUsers())
		err := useCase.UnassignRole(context.Background(), workspaceID, userID, "editor")

		require.NoError(t, err)
		membershipRepo.AssertExpectations(t)
	})

	t.Run("absent membership reports not found", func(t *testing.T) {
		membershipRepo := new(mockMembershipRepository)
		workspaces := new(mockWorkspaceChecker)
		workspaces.On("Exists", mock.Anything, workspaceID).Return(nil)
		membershipRepo.On("Delete", mock.Anything, workspaceID, userID, "editor").
			Return(authzDomain.ErrMembershipNotFound)

		useCase := NewPolicyUseCase(new(mockRuleRepository), membershipRepo, workspaces, knownUsers())
		err := useCase.UnassignRole(context.Background(), workspaceID, userID, "editor")

		assert.ErrorIs(t, err, authzDomain.ErrMembershipNotFound)
	})
}

func TestPolicyUseCase_ListSubjectPermissions(t *testing.T) {
	workspaceID := uuid.Must(uuid.NewV7())
	subject := authzDomain.RoleSubject("editor")

	ruleRepo := new(mockRuleRepository)
	workspaces := new(mockWorkspaceChecker)
	workspaces.On("Exists", mock.Anything, workspaceID).Return(nil)
	ruleRepo.On("ListBySubjects", mock.Anything, workspaceID, []authzDomain.Subject{subject}).
		Return([]*authzDomain.Rule{}, nil)

	useCase := NewPolicyUseCase(ruleRepo, new(mockMembershipRepository), workspaces, knownUsers())
	rules, err := useCase.ListSubjectPermissions(context.Background(), workspaceID, subject)

	require.NoError(t, err)
	assert.Empty(t, rules)
	ruleRepo.AssertExpectations(t)
}

func TestPolicyUseCase_ListUserRoles(t *testing.T) {
	workspaceID := uuid.Must(uuid.NewV7())
	userID := uuid.Must(uuid.NewV7())

	membershipRepo := new(mockMembershipRepository)
	workspaces := new(mockWorkspaceChecker)
	workspaces.On("Exists", mock.Anything, workspaceID).Return(nil)
	membershipRepo.On("ListRolesByUser", mock.Anything, workspaceID, userID).
		Return([]string{"editor", "viewer"}, nil)

	useCase := NewPolicyUseCase(new(mockRuleRepository), membershipRepo, workspaces, knownUsers())
	roles, err := useCase.ListUserRoles(context.Background(), workspaceID, userID)

	require.NoError(t, err)
	assert.Equal(t, []string{"editor", "viewer"}, roles)
}
