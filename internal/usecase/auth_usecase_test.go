package usecase

import (
	"context"
	"errors"
	"testing"

	"job-board/internal/domain/user"
	"job-board/internal/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type usersRepoMock struct {
	byEmail map[string]user.User
	byID    map[uuid.UUID]user.User

	createErr error
	existsErr error
}

func newUsersRepoMock() *usersRepoMock {
	return &usersRepoMock{
		byEmail: make(map[string]user.User),
		byID:    make(map[uuid.UUID]user.User),
	}
}

func (m *usersRepoMock) Create(_ context.Context, u user.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.byEmail[u.Email] = u
	m.byID[u.ID] = u
	return nil
}

func (m *usersRepoMock) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *usersRepoMock) GetByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *usersRepoMock) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.byEmail[email]
	return ok, nil
}

type jwtStub struct {
	token string
	err   error
}

func (s jwtStub) Generate(uuid.UUID, string, string) (string, error) { return s.token, s.err }
func (s jwtStub) Validate(string) (jwt.Claims, error)                { return jwt.Claims{}, nil }

func TestAuthSignup_InvalidRole(t *testing.T) {
	uc := NewAuthUsecase(newUsersRepoMock(), jwtStub{})
	_, _, err := uc.Signup(context.Background(), SignupInput{
		Name: "Jane", Email: "jane@example.com", Password: "secret-pass", Role: "admin",
	})
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthSignup_ShortPassword(t *testing.T) {
	uc := NewAuthUsecase(newUsersRepoMock(), jwtStub{})
	_, _, err := uc.Signup(context.Background(), SignupInput{
		Name: "Jane", Email: "jane@example.com", Password: "short", Role: "candidate",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthSignup_EmailTaken(t *testing.T) {
	repo := newUsersRepoMock()
	repo.byEmail["jane@example.com"] = user.User{ID: uuid.New(), Email: "jane@example.com"}

	uc := NewAuthUsecase(repo, jwtStub{token: "t"})
	_, _, err := uc.Signup(context.Background(), SignupInput{
		Name: "Jane", Email: "Jane@Example.com", Password: "secret-pass", Role: "candidate",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthSignup_Success(t *testing.T) {
	repo := newUsersRepoMock()
	uc := NewAuthUsecase(repo, jwtStub{token: "signed-token"})

	usr, token, err := uc.Signup(context.Background(), SignupInput{
		Name: "  Jane  ", Email: " Jane@Example.com ", Password: "secret-pass", Role: "recruiter",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token != "signed-token" {
		t.Fatalf("unexpected token %q", token)
	}
	if usr.Email != "jane@example.com" {
		t.Fatalf("email not normalized: %q", usr.Email)
	}
	if usr.Name != "Jane" {
		t.Fatalf("name not trimmed: %q", usr.Name)
	}
	if usr.Role != user.RoleRecruiter {
		t.Fatalf("unexpected role %q", usr.Role)
	}
	if usr.PasswordHash != "" {
		t.Fatalf("password hash leaked to caller")
	}

	stored, ok := repo.byEmail["jane@example.com"]
	if !ok {
		t.Fatalf("user not persisted")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret-pass")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthLogin_UnknownEmail(t *testing.T) {
	uc := NewAuthUsecase(newUsersRepoMock(), jwtStub{token: "t"})
	_, err := uc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "secret-pass"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	repo := newUsersRepoMock()
	repo.byEmail["jane@example.com"] = user.User{
		ID: uuid.New(), Email: "jane@example.com", PasswordHash: string(hash), Role: user.RoleCandidate,
	}

	uc := NewAuthUsecase(repo, jwtStub{token: "t"})
	_, err = uc.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "wrong-pass"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("right-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	repo := newUsersRepoMock()
	repo.byEmail["jane@example.com"] = user.User{
		ID: uuid.New(), Name: "Jane", Email: "jane@example.com", PasswordHash: string(hash), Role: user.RoleCandidate,
	}

	uc := NewAuthUsecase(repo, jwtStub{token: "signed-token"})
	token, err := uc.Login(context.Background(), LoginInput{Email: " Jane@Example.com ", Password: "right-pass"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token != "signed-token" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthDashboard_NotFound(t *testing.T) {
	uc := NewAuthUsecase(newUsersRepoMock(), jwtStub{})
	_, err := uc.Dashboard(context.Background(), uuid.New())
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected user.ErrNotFound, got %v", err)
	}
}

func TestAuthDashboard_Sanitizes(t *testing.T) {
	id := uuid.New()
	repo := newUsersRepoMock()
	repo.byID[id] = user.User{ID: id, Name: "Jane", Email: "jane@example.com", PasswordHash: "hash", Role: user.RoleCandidate}

	uc := NewAuthUsecase(repo, jwtStub{})
	usr, err := uc.Dashboard(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if usr.PasswordHash != "" {
		t.Fatalf("password hash leaked to caller")
	}
}
