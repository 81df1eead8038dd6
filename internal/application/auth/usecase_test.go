package auth_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/retail-pro/internal/application/auth"
	"github.com/tu-usuario/retail-pro/internal/application/dto"
	"github.com/tu-usuario/retail-pro/internal/domain"
	"github.com/tu-usuario/retail-pro/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/retail-pro/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User // por email
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	if _, ok := f.users[u.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	f.users[u.Email] = u
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, id)
}

func (f *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("%w: email %s", domain.ErrNotFound, email)
}

type fakeBranchRepo struct {
	branches map[string]*entity.Branch
}

func (f *fakeBranchRepo) Create(b *entity.Branch) error { f.branches[b.ID] = b; return nil }
func (f *fakeBranchRepo) GetByID(id string) (*entity.Branch, error) {
	if b, ok := f.branches[id]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: sucursal %s", domain.ErrNotFound, id)
}
func (f *fakeBranchRepo) List() ([]*entity.Branch, error) { return nil, nil }
func (f *fakeBranchRepo) Update(*entity.Branch) error     { return nil }

var testJWT = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "retail-pro-test"}

func newUseCase() (*auth.UseCase, *fakeUserRepo) {
	users := &fakeUserRepo{users: make(map[string]*entity.User)}
	branches := &fakeBranchRepo{branches: map[string]*entity.Branch{
		"b1": {ID: "b1", Name: "Central", Active: true},
	}}
	return auth.NewUseCase(users, branches, testJWT), users
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_EmpleadoConSucursal(t *testing.T) {
	uc, users := newUseCase()

	resp, err := uc.Register(dto.RegisterRequest{
		Email:    "emp@tienda.com",
		Password: "secreto-123",
		Name:     "Empleado",
		Role:     entity.RoleEmployee,
		BranchID: "b1",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, resp.Role)
	assert.Equal(t, "b1", resp.BranchID)

	stored := users.users["emp@tienda.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto-123", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto-123")))
}

func TestRegister_EmpleadoSinSucursalFalla(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(dto.RegisterRequest{
		Email:    "emp@tienda.com",
		Password: "secreto-123",
		Role:     entity.RoleEmployee,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_SucursalInexistenteFalla(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(dto.RegisterRequest{
		Email:    "emp@tienda.com",
		Password: "secreto-123",
		Role:     entity.RoleEmployee,
		BranchID: "b-fantasma",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_AdminQuedaSinSucursal(t *testing.T) {
	uc, _ := newUseCase()

	resp, err := uc.Register(dto.RegisterRequest{
		Email:    "admin@tienda.com",
		Password: "secreto-123",
		Role:     entity.RoleAdmin,
		BranchID: "b1", // se ignora: el admin tiene alcance global
	})

	require.NoError(t, err)
	assert.Empty(t, resp.BranchID)
}

func TestRegister_EmailDuplicadoFalla(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(dto.RegisterRequest{
		Email: "emp@tienda.com", Password: "secreto-123", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = uc.Register(dto.RegisterRequest{
		Email: "emp@tienda.com", Password: "otro-pass", Role: entity.RoleAdmin,
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_RolDesconocidoFalla(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Register(dto.RegisterRequest{
		Email: "x@tienda.com", Password: "secreto-123", Role: "superusuario",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_DevuelveTokenConClaims(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Register(dto.RegisterRequest{
		Email:    "emp@tienda.com",
		Password: "secreto-123",
		Role:     entity.RoleEmployee,
		BranchID: "b1",
	})
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "emp@tienda.com", Password: "secreto-123"})

	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, branchID, role, err := pkgjwt.Parse(testJWT.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)
	assert.Equal(t, "b1", branchID)
	assert.Equal(t, entity.RoleEmployee, role)
}

func TestLogin_PasswordIncorrectoDaUnauthorized(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.Register(dto.RegisterRequest{
		Email: "emp@tienda.com", Password: "secreto-123", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "emp@tienda.com", Password: "equivocado"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_EmailInexistenteDaUnauthorized(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@tienda.com", Password: "x"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized,
		"no se filtra si el email existe o no")
}

func TestLogin_UsuarioInactivoDaForbidden(t *testing.T) {
	uc, users := newUseCase()
	_, err := uc.Register(dto.RegisterRequest{
		Email: "emp@tienda.com", Password: "secreto-123", Role: entity.RoleAdmin,
	})
	require.NoError(t, err)
	users.users["emp@tienda.com"].Status = "disabled"

	_, err = uc.Login(dto.LoginRequest{Email: "emp@tienda.com", Password: "secreto-123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
