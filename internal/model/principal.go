package model

type Principal struct {
	UserID  int64
	Email   string
	Role    UserRole
	TokenID string
}

func (p Principal) IsAdmin() bool {
	return p.Role == UserRoleAdmin
}
