package app

import (
	"time"

	"gopherblog/internal/pkg/jwtutil"
)

// Identity is the authenticated user a session token speaks for.
type Identity struct {
	UserID   uint
	Username string
}

// SessionService issues and verifies the signed tokens held in the session
// cookie. Nothing is stored server side, so a token stays valid until it
// expires even after the cookie carrying it has been cleared.
type SessionService struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionService(secret string, ttl time.Duration) *SessionService {
	return &SessionService{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *SessionService) Issue(userID uint, username string) (string, error) {
	return jwtutil.GenerateTokenAt(s.secret, s.now(), s.ttl, userID, username)
}

// Verify returns the identity carried by token, or nil for an anonymous
// request. Every failure, whatever the cause, is treated as anonymous.
func (s *SessionService) Verify(token string) *Identity {
	claims, err := jwtutil.ParseToken(s.secret, token)
	if err != nil {
		return nil
	}
	return &Identity{UserID: claims.UserID, Username: claims.Username}
}
