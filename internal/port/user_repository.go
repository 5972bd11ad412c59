package port

import (
	"context"

	"github.com/google/uuid"

	"gstdesk/internal/domain"
)

// UserRepository looks up reviewers for display and notification.
// User provisioning lives with the identity provider, not here.
type UserRepository interface {
	GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*domain.User, error)
}
