package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ga-dictionary/api-server-go/idp"
	"github.com/ga-dictionary/api-server-go/models"
	apierrors "github.com/ga-dictionary/api-server-go/pkg/errors"
)

// UserService handles principal records and user administration
type UserService struct {
	db  *gorm.DB
	idp idp.UserManager // optional profile enrichment; nil when not configured
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB, userManager idp.UserManager) *UserService {
	return &UserService{db: db, idp: userManager}
}

// ResolvePrincipal maps validated identity provider claims to a principal,
// creating the local user record on first sight with the default USER role.
func (s *UserService) ResolvePrincipal(ctx context.Context, claims *models.UserClaims) (*models.Principal, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "idp_user_id = ?", claims.Subject).Error
	if err == nil {
		return models.NewPrincipal(&user), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.DatabaseError("resolve principal", err)
	}

	user = models.User{
		UserID:    "usr_" + uuid.New().String(),
		IdpUserID: claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      models.RoleUser,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// Two first-sign-in requests can race on the idp_user_id unique
		// index; the loser re-reads the winner's row.
		if isUniqueViolation(err) {
			if readErr := s.db.WithContext(ctx).First(&user, "idp_user_id = ?", claims.Subject).Error; readErr == nil {
				return models.NewPrincipal(&user), nil
			}
		}
		return nil, apierrors.DatabaseError("create user", err)
	}

	slog.Info("Created user record on first sign-in", "userId", user.UserID)
	return models.NewPrincipal(&user), nil
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.UserResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFoundError("user")
		}
		return nil, apierrors.DatabaseError("fetch user", err)
	}

	response := models.NewUserResponse(&user)

	// Enrich with the identity provider profile when a management client is
	// configured; a provider failure never fails the lookup.
	if s.idp != nil {
		if info, err := s.idp.GetUser(ctx, user.IdpUserID); err != nil {
			slog.Warn("Failed to fetch IDP profile", "userId", user.UserID, "error", err)
		} else {
			response.Email = info.Email
			if info.Name != "" {
				response.Name = info.Name
			}
		}
	}

	return response, nil
}

// GetUserByID returns the raw user record
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFoundError("user")
		}
		return nil, apierrors.DatabaseError("fetch user", err)
	}
	return &user, nil
}

// GetAllUsers lists users ordered by reputation. Access control (the
// ADMIN/MODERATOR set check) is enforced at the handler.
func (s *UserService) GetAllUsers(ctx context.Context) ([]models.UserResponse, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("reputation DESC, created_at ASC").Find(&users).Error
	if err != nil {
		return nil, apierrors.DatabaseError("fetch users", err)
	}

	responses := make([]models.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *models.NewUserResponse(&users[i]))
	}
	return responses, nil
}

// UpdateUserRole changes a user's role. ADMIN only, enforced at the handler.
func (s *UserService) UpdateUserRole(ctx context.Context, userID string, req *models.UpdateUserRoleRequest) (*models.UserResponse, error) {
	if !req.Role.IsValid() {
		return nil, apierrors.ValidationError("INVALID_ROLE", "unknown role: "+req.Role.String())
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.NotFoundError("user")
		}
		return nil, apierrors.DatabaseError("fetch user", err)
	}

	user.Role = req.Role
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return nil, apierrors.DatabaseError("update user role", err)
	}

	slog.Info("User role updated", "userId", user.UserID, "role", user.Role)
	return models.NewUserResponse(&user), nil
}
