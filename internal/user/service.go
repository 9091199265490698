package user

import (
	"context"
	"log"
	"regexp"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError carries a caller-facing message for rejected input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

var (
	errFieldsRequired = &ValidationError{Msg: "All fields are required"}
	errInvalidEmail   = &ValidationError{Msg: "Invalid email format"}
)

type RegisterInput struct {
	Name    string
	Gender  string
	Email   string
	Country string
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register validates input and stores a new user. Required fields are checked
// before the email format.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	// values are checked and stored exactly as received
	user := User{
		Name:    input.Name,
		Gender:  input.Gender,
		Email:   input.Email,
		Country: input.Country,
	}

	if user.Name == "" || user.Gender == "" || user.Email == "" || user.Country == "" {
		return User{}, errFieldsRequired
	}
	if !emailPattern.MatchString(user.Email) {
		return User{}, errInvalidEmail
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return User{}, err
	}

	log.Printf("new user registered: %s (id: %d)", created.Name, created.ID)
	return created, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("user deleted: id %d", id)
	return nil
}
