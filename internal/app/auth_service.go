package app

import (
	"regexp"
	"strings"

	"gopherblog/internal/model"
	"gopherblog/internal/pkg/password"
	"gopherblog/internal/repository"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 20
	passwordMinLen = 8
	passwordMaxLen = 70

	MsgUsernameRequired   = "You must provide a username."
	MsgUsernameTooShort   = "Username must be at least 3 characters."
	MsgUsernameTooLong    = "Username cannot exceed 20 characters."
	MsgUsernameCharset    = "Username can only contain letters and numbers."
	MsgUsernameTaken      = "That username is already taken."
	MsgPasswordRequired   = "You must provide a password."
	MsgPasswordTooShort   = "Password must be at least 8 characters."
	MsgPasswordTooLong    = "Password cannot exceed 70 characters."
	MsgInvalidCredentials = "Invalid username/password."
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

type AuthService struct {
	userRepo *repository.UserRepository
	hasher   *password.Hasher
	sessions *SessionService
}

type RegisterInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(userRepo *repository.UserRepository, hasher *password.Hasher, sessions *SessionService) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		sessions: sessions,
	}
}

// ValidateRegistration runs every registration rule and collects all failure
// messages. The returned input has its username trimmed. A non-nil error is a
// storage failure, not a validation failure.
func (s *AuthService) ValidateRegistration(input RegisterInput) (RegisterInput, []string, error) {
	username := strings.TrimSpace(input.Username)
	pass := input.Password

	var messages []string
	if username == "" {
		messages = append(messages, MsgUsernameRequired)
	} else {
		if len(username) < usernameMinLen {
			messages = append(messages, MsgUsernameTooShort)
		}
		if len(username) > usernameMaxLen {
			messages = append(messages, MsgUsernameTooLong)
		}
		if !usernamePattern.MatchString(username) {
			messages = append(messages, MsgUsernameCharset)
		}

		existing, err := s.userRepo.GetByUsername(username)
		if err != nil {
			return RegisterInput{}, nil, err
		}
		if existing != nil {
			messages = append(messages, MsgUsernameTaken)
		}
	}

	if pass == "" {
		messages = append(messages, MsgPasswordRequired)
	} else {
		// Byte length keeps every accepted password inside bcrypt's 72-byte input limit.
		if len(pass) < passwordMinLen {
			messages = append(messages, MsgPasswordTooShort)
		}
		if len(pass) > passwordMaxLen {
			messages = append(messages, MsgPasswordTooLong)
		}
	}

	return RegisterInput{Username: username, Password: pass}, messages, nil
}

func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	clean, messages, err := s.ValidateRegistration(input)
	if err != nil {
		return nil, err
	}
	if len(messages) > 0 {
		return nil, newValidationError(messages...)
	}

	hash, err := s.hasher.Hash(clean.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     clean.Username,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(user); err != nil {
		// lost a race with a concurrent registration of the same name
		if isDuplicate(err) {
			return nil, newValidationError(MsgUsernameTaken)
		}
		return nil, err
	}

	token, err := s.sessions.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login answers an unknown username and a wrong password with the same
// message so the response does not reveal which accounts exist.
func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	pass := input.Password

	var messages []string
	if username == "" {
		messages = append(messages, MsgUsernameRequired)
	}
	if pass == "" {
		messages = append(messages, MsgPasswordRequired)
	}
	if len(messages) > 0 {
		return nil, newValidationError(messages...)
	}

	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(pass, user.PasswordHash) {
		return nil, newValidationError(MsgInvalidCredentials)
	}

	token, err := s.sessions.Issue(user.ID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) GetUserByID(id uint) (*model.User, error) {
	if id == 0 {
		return nil, ErrUserNotFound
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
