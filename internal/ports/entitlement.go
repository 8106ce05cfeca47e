package ports

import "context"

// EntitlementRepository answers whether a caller may watch a lesson's video.
// The decision itself lives in the LMS schema; the proxy only consumes it.
type EntitlementRepository interface {
	LessonExists(ctx context.Context, lessonID string) (bool, error)
	HasActiveEnrollment(ctx context.Context, userID, lessonID string) (bool, error)
}
