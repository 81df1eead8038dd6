package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User representa un usuario del sistema. Los empleados quedan atados a una
// sucursal; los administradores tienen BranchID vacío y alcance global.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	BranchID     string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
