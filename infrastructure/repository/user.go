package repository

import (
	"strings"
	"sync"

	"github.com/vfg2006/toystore-admin-api/internal/domain"
)

type UserRepository interface {
	GetUserByEmail(email string) (*domain.User, error)
	GetUserByID(userID string) (*domain.User, error)
}

// userRepository guarda os usuários do painel em memória. Hoje existe apenas
// o administrador, criado na inicialização a partir da configuração.
type userRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

func NewUserRepository(users ...domain.User) UserRepository {
	return &userRepository{
		users: users,
	}
}

func (r *userRepository) GetUserByEmail(email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			found := user
			return &found, nil
		}
	}

	return nil, nil
}

func (r *userRepository) GetUserByID(userID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == userID {
			found := user
			return &found, nil
		}
	}

	return nil, nil
}
