package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	userDomain "github.com/allisson/accounts/internal/user/domain"
	userUsecase "github.com/allisson/accounts/internal/user/usecase"
)

// CreateUserOptions holds the flags for the create-user command.
type CreateUserOptions struct {
	Username string
	Email    string
	Password string
	FullName string
	Role     string
	Format   string
}

// RunCreateUser registers a new user from the command line, typically to
// bootstrap the first admin account. When the password flag is empty the
// command prompts for it. The password is never echoed back in the output.
//
// Requirements: Database must be migrated and accessible.
func RunCreateUser(
	ctx context.Context,
	userUseCase userUsecase.UseCase,
	logger *slog.Logger,
	opts CreateUserOptions,
	io IOTuple,
) error {
	logger.Info("creating new user",
		slog.String("username", opts.Username),
		slog.String("role", opts.Role),
	)

	password := opts.Password
	if password == "" {
		var err error
		password, err = promptForPassword(io)
		if err != nil {
			return err
		}
	}

	input := userUsecase.RegisterUserInput{
		Username: opts.Username,
		Email:    opts.Email,
		Password: password,
		Role:     opts.Role,
	}
	if fullName := strings.TrimSpace(opts.FullName); fullName != "" {
		input.FullName = &fullName
	}

	user, err := userUseCase.RegisterUser(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if opts.Format == "json" {
		outputUserJSON(user, io.Writer)
	} else {
		outputUserText(user, io.Writer)
	}

	logger.Info("user created successfully",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)

	return nil
}

// promptForPassword reads the password from the command's input.
func promptForPassword(io IOTuple) (string, error) {
	reader := bufio.NewReader(io.Reader)

	_, _ = fmt.Fprint(io.Writer, "Enter password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return strings.TrimRight(password, "\r\n"), nil
}

// outputUserText outputs the result in human-readable text format.
func outputUserText(user *userDomain.User, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nUser created successfully!")
	_, _ = fmt.Fprintf(writer, "ID: %d\n", user.ID)
	_, _ = fmt.Fprintf(writer, "Username: %s\n", user.Username)
	_, _ = fmt.Fprintf(writer, "Email: %s\n", user.Email)
	_, _ = fmt.Fprintf(writer, "Role: %s\n", user.Role)
}

// outputUserJSON outputs the result in JSON format for machine consumption.
func outputUserJSON(user *userDomain.User, writer io.Writer) {
	result := map[string]any{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     string(user.Role),
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
