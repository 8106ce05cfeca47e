package ports

import (
	"context"

	"github.com/Vovarama1992/streamgate/internal/models"
)

type SessionService interface {
	ValidateToken(ctx context.Context, token string) (*models.Identity, error)
}
