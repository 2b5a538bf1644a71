package domain

// Role роль администратора
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Admin учётная запись администратора, пароль хранится bcrypt-хешем
type Admin struct {
	Email        string
	PasswordHash string
	Role         Role
}

// CanManageOffices создание офисов и изменение ёмкости доступны только super_admin
func (a *Admin) CanManageOffices() bool {
	return a.Role == RoleSuperAdmin
}
