package infra

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/streamgate/internal/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresEntitlementRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresEntitlementRepo(pool *pgxpool.Pool) ports.EntitlementRepository {
	return &PostgresEntitlementRepo{pool: pool}
}

func (r *PostgresEntitlementRepo) LessonExists(ctx context.Context, lessonID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM lessons WHERE id = $1
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, lessonID).Scan(&exists); err != nil {
		return false, fmt.Errorf("lesson exists: %w", err)
	}

	return exists, nil
}

// HasActiveEnrollment walks lesson -> module -> course -> enrollment. Only an
// active enrollment on the owning course grants access.
func (r *PostgresEntitlementRepo) HasActiveEnrollment(ctx context.Context, userID, lessonID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM lessons l
			JOIN modules m ON m.id = l.module_id
			JOIN courses c ON c.id = m.course_id
			JOIN enrollments e ON e.course_id = c.id
			WHERE l.id = $1
			  AND e.user_id = $2
			  AND e.status = 'active'
		)
	`

	var allowed bool
	if err := r.pool.QueryRow(ctx, query, lessonID, userID).Scan(&allowed); err != nil {
		return false, fmt.Errorf("active enrollment: %w", err)
	}

	return allowed, nil
}
