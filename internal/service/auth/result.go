package auth

import "github.com/heartmarshall/studylog-backend/internal/domain"

// AuthResult is returned by Register, Login and Refresh operations.
type AuthResult struct {
	AccessToken  string
	SessionToken string // raw token, NOT hash
	User         *domain.User
}
