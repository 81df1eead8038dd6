package dto

import "github.com/tu-usuario/retail-pro/internal/domain/entity"

// ErrorResponse respuesta de error uniforme de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Actor identifica a quien ejecuta la operación (atribución y alcance por
// sucursal). La autenticación ya ocurrió en el middleware; aquí solo viajan
// identidad y alcance.
type Actor struct {
	UserID   string
	BranchID string // vacío para administradores
	Role     string
}

// IsAdmin indica si el actor tiene alcance global.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// CanAccessBranch indica si el actor puede operar sobre la sucursal dada.
// Los empleados solo operan sobre su propia sucursal.
func (a Actor) CanAccessBranch(branchID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.BranchID != "" && a.BranchID == branchID
}
