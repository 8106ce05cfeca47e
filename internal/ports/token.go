package ports

import "github.com/Vovarama1992/streamgate/internal/models"

// TokenCodec signs and verifies capability tokens. Pure over the signing
// secret and the input, no side effects.
type TokenCodec interface {
	Encode(payload models.VideoToken) (string, error)
	Decode(token string) (*models.VideoToken, error)
}
