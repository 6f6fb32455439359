package domain

import (
	"strings"

	"github.com/google/uuid"
)

// OperatorRole - роль сотрудника, работающего с сервисом
type OperatorRole string

const (
	RoleOperator  OperatorRole = "operator"  // Регистрация, comprobantes, оплата
	RoleInspector OperatorRole = "inspector" // Технические проверки
	RoleAdmin     OperatorRole = "admin"     // Все операции
)

// ParseOperatorRole разбирает роль без учета регистра
func ParseOperatorRole(s string) (OperatorRole, error) {
	role := OperatorRole(strings.ToLower(strings.TrimSpace(s)))
	switch role {
	case RoleOperator, RoleInspector, RoleAdmin:
		return role, nil
	}
	return "", ErrInvalidRole
}

// Operator - сотрудник, от имени которого выполняется запрос.
// Учетные записи не хранятся, данные приходят из токена
type Operator struct {
	ID   uuid.UUID    `json:"id"`
	Name string       `json:"name"`
	Role OperatorRole `json:"role"`
}

// IsAdmin проверяет, является ли сотрудник администратором
func (o *Operator) IsAdmin() bool {
	return o.Role == RoleAdmin
}

// HasRole - admin проходит любую проверку роли
func (o *Operator) HasRole(roles ...OperatorRole) bool {
	if o.IsAdmin() {
		return true
	}
	for _, r := range roles {
		if o.Role == r {
			return true
		}
	}
	return false
}
