package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	identityDomain "github.com/allisson/gatekeeper/internal/identity/domain"
	identityUseCase "github.com/allisson/gatekeeper/internal/identity/usecase"
)

// RunCreateUser provisions a new service user and prints the generated API
// key. The plain key is shown only once; the stored copy is hashed. Outputs
// user ID and key in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase identityUseCase.UserUseCase,
	logger *slog.Logger,
	writer io.Writer,
	email, name string,
	isSuperuser bool,
	format string,
) error {
	logger.Info("creating new user",
		slog.String("email", email),
		slog.Bool("is_superuser", isSuperuser),
	)

	input := &identityDomain.CreateUserInput{
		Email:       email,
		Name:        name,
		IsSuperuser: isSuperuser,
	}

	output, err := userUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	// Output result based on format
	if format == "json" {
		if err := outputUserJSON(writer, output); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputUserText(writer, output)
	}

	logger.Info("user created successfully",
		slog.String("user_id", output.ID.String()),
		slog.String("email", email),
	)

	return nil
}

// outputUserText outputs the result in human-readable text format.
func outputUserText(writer io.Writer, output *identityDomain.CreateUserOutput) {
	_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
	_, _ = fmt.Fprintf(writer, "User ID: %s\n", output.ID.String())
	_, _ = fmt.Fprintf(writer, "API Key: %s\n", output.PlainAPIKey)
	_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The API key is shown only once. Store it securely.")
}

// outputUserJSON outputs the result in JSON format for machine consumption.
func outputUserJSON(writer io.Writer, output *identityDomain.CreateUserOutput) error {
	result := map[string]string{
		"user_id": output.ID.String(),
		"api_key": output.PlainAPIKey,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
	return nil
}
