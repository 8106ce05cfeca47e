package models

import "time"

// VideoToken is the payload of a capability token: a signed, self-contained
// grant to fetch one video's resources until ExpiresAt. It is never stored.
type VideoToken struct {
	ID        string // jti, referenced by the revocation denylist
	VideoID   string
	UserID    string
	LessonID  string
	ExpiresAt time.Time
}
