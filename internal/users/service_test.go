package users

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
)

type mockRepository struct {
	users   map[int64]User
	byEmail map[string]int64
	nextID  int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[int64]User), byEmail: make(map[string]int64), nextID: 1}
}

func (m *mockRepository) List(_ context.Context) ([]User, error) {
	var out []User
	for id := int64(1); id < m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockRepository) GetByEmail(_ context.Context, email string) (User, error) {
	id, ok := m.byEmail[email]
	if !ok {
		return User{}, httpx.ErrNotFound
	}
	return m.users[id], nil
}

func (m *mockRepository) Create(_ context.Context, user User) (User, error) {
	if _, exists := m.byEmail[user.Email]; exists {
		return User{}, httpx.ErrDuplicate
	}
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.nextID++
	m.users[user.ID] = user
	m.byEmail[user.Email] = user.ID
	return user, nil
}

func TestRegister(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	user, err := svc.Register(context.Background(), CreateUserRequest{
		Name:     "Ops",
		Email:    "ops@example.com",
		Password: "s3cretpass",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cretpass")))
	assert.NotEqual(t, "s3cretpass", user.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), CreateUserRequest{Name: "Ops", Email: "ops@example.com", Password: "s3cretpass"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), CreateUserRequest{Name: "Dup", Email: "ops@example.com", Password: "otherpass1"})
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestListUsers(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := svc.Register(context.Background(), CreateUserRequest{Name: email, Email: email, Password: "s3cretpass"})
		require.NoError(t, err)
	}

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
