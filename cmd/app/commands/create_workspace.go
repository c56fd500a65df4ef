package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	workspaceDomain "github.com/allisson/gatekeeper/internal/workspace/domain"
	workspaceUseCase "github.com/allisson/gatekeeper/internal/workspace/usecase"
)

// RunCreateWorkspace provisions a new workspace tenant. Outputs the workspace
// ID in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateWorkspace(
	ctx context.Context,
	useCase workspaceUseCase.WorkspaceUseCase,
	logger *slog.Logger,
	writer io.Writer,
	name string,
	format string,
) error {
	logger.Info("creating new workspace", slog.String("name", name))

	input := &workspaceDomain.CreateWorkspaceInput{
		Name: name,
	}

	workspace, err := useCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	// Output result based on format
	if format == "json" {
		if err := outputWorkspaceJSON(writer, workspace); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputWorkspaceText(writer, workspace)
	}

	logger.Info("workspace created successfully",
		slog.String("workspace_id", workspace.ID.String()),
		slog.String("name", name),
	)

	return nil
}

// outputWorkspaceText outputs the result in human-readable text format.
func outputWorkspaceText(writer io.Writer, workspace *workspaceDomain.Workspace) {
	_, _ = fmt.Fprintln(writer, "\nWorkspace created successfully!")
	_, _ = fmt.Fprintf(writer, "Workspace ID: %s\n", workspace.ID.String())
	_, _ = fmt.Fprintf(writer, "Name: %s\n", workspace.Name)
}

// outputWorkspaceJSON outputs the result in JSON format for machine consumption.
func outputWorkspaceJSON(writer io.Writer, workspace *workspaceDomain.Workspace) error {
	result := map[string]string{
		"workspace_id": workspace.ID.String(),
		"name":         workspace.Name,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
	return nil
}
