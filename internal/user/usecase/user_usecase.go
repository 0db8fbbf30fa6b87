// Package usecase implements the user business logic and orchestrates user domain operations.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	authService "github.com/allisson/accounts/internal/auth/service"
	"github.com/allisson/accounts/internal/database"
	"github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/user/domain"
	appValidation "github.com/allisson/accounts/internal/validation"
)

// RegisterUserInput contains the input data for user registration
type RegisterUserInput struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
	Role     string  `json:"role"`
}

// UpdateUserInput contains the optional fields for a partial user update.
// Nil fields are left unchanged.
type UpdateUserInput struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// UseCase defines the interface for user business logic operations
type UseCase interface {
	RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context, skip, limit int) ([]*domain.User, int64, error)
	UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// UserRepository interface defines user repository operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, skip, limit int) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

// UserUseCase handles user-related business logic
type UserUseCase struct {
	txManager       database.TxManager
	userRepo        UserRepository
	passwordService authService.PasswordService
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	passwordService authService.PasswordService,
) UseCase {
	return &UserUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// validateRegisterUserInput validates the registration input using jellydator/validation
func (uc *UserUseCase) validateRegisterUserInput(input RegisterUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Username,
			validation.Required.Error("username is required"),
			appValidation.NotBlank,
			appValidation.Username,
			validation.Length(3, 50).Error("username must be between 3 and 50 characters"),
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// RegisterUser registers a new user account.
//
// The plain password is hashed before the user is stored; duplicate usernames
// and emails surface as field-specific conflict errors from the repository.
func (uc *UserUseCase) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	if err := uc.validateRegisterUserInput(input); err != nil {
		return nil, err
	}

	role := domain.Role(input.Role)
	if input.Role == "" {
		role = domain.RoleUser
	}
	if !role.IsValid() {
		return nil, domain.ErrInvalidRole
	}

	hashedPassword, err := uc.passwordService.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &domain.User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.TrimSpace(strings.ToLower(input.Email)),
		PasswordHash: hashedPassword,
		FullName:     input.FullName,
		Role:         role,
		IsActive:     true,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByID retrieves a user by ID
func (uc *UserUseCase) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// ListUsers retrieves a page of users and the total user count.
func (uc *UserUseCase) ListUsers(ctx context.Context, skip, limit int) ([]*domain.User, int64, error) {
	users, err := uc.userRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// validateUpdateUserInput validates the partial update input.
func (uc *UserUseCase) validateUpdateUserInput(input UpdateUserInput) error {
	fields := []*validation.FieldRules{}
	if input.Username != nil {
		fields = append(fields, validation.Field(&input.Username,
			appValidation.NotBlank,
			appValidation.Username,
			validation.Length(3, 50).Error("username must be between 3 and 50 characters"),
		))
	}
	if input.Email != nil {
		fields = append(fields, validation.Field(&input.Email,
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		))
	}
	if input.Password != nil {
		fields = append(fields, validation.Field(&input.Password,
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
			appValidation.PasswordStrength{
				MinLength:     8,
				RequireUpper:  true,
				RequireLower:  true,
				RequireNumber: true,
			},
		))
	}
	return appValidation.WrapValidationError(validation.ValidateStruct(&input, fields...))
}

// UpdateUser applies a partial update to an existing user.
//
// Only the non-nil fields of input are changed. A new password is re-hashed;
// changing the username or email runs through the same duplicate detection as
// creation.
// The whole operation runs in a transaction so the read-modify-write cannot
// interleave with a concurrent update.
func (uc *UserUseCase) UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error) {
	if err := uc.validateUpdateUserInput(input); err != nil {
		return nil, err
	}

	if input.Role != nil && !domain.Role(*input.Role).IsValid() {
		return nil, domain.ErrInvalidRole
	}

	var user *domain.User
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		current, err := uc.userRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.Username != nil {
			current.Username = strings.TrimSpace(*input.Username)
		}
		if input.Email != nil {
			current.Email = strings.TrimSpace(strings.ToLower(*input.Email))
		}
		if input.Password != nil {
			hashedPassword, err := uc.passwordService.Hash(*input.Password)
			if err != nil {
				return errors.Wrap(err, "failed to hash password")
			}
			current.PasswordHash = hashedPassword
		}
		if input.FullName != nil {
			current.FullName = input.FullName
		}
		if input.Role != nil {
			current.Role = domain.Role(*input.Role)
		}
		if input.IsActive != nil {
			current.IsActive = *input.IsActive
		}

		if err := uc.userRepo.Update(ctx, current); err != nil {
			return err
		}

		user = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes a user account.
//
// Deletion is hard: outstanding access tokens for the user keep verifying
// cryptographically but fail subject resolution on the next request.
func (uc *UserUseCase) DeleteUser(ctx context.Context, id int64) error {
	return uc.userRepo.Delete(ctx, id)
}
