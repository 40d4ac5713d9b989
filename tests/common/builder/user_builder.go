//go:build unit

package builder

import (
	domuser "brow-studio-api/internal/domain/user"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:           uuid.New(),
		Email:        "customer@example.com",
		Name:         "Kim Jiyoung",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Role:         "customer",
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

func (b *UserBuilder) BuildDomain() (*domuser.User, error) {
	email, err := domuser.NewEmail(b.Email)
	if err != nil {
		return nil, err
	}
	role, err := domuser.NewRole(b.Role)
	if err != nil {
		return nil, err
	}
	return domuser.NewUser(email, b.Name, b.PasswordHash, role)
}
