package models

import (
	"strings"

	"github.com/it407/it-assets/pkg/roles"
	"github.com/it407/it-assets/pkg/table"
)

type User struct {
	ID         string     `json:"user_id"`
	EmployeeID string     `json:"employee_id"`
	Email      string     `json:"email"`
	Password   string     `json:"-"`
	Role       roles.Role `json:"role"`
	IsActive   bool       `json:"is_active"`
}

func UserFromRow(row table.Row) User {
	return User{
		ID:         row.Get("user_id"),
		EmployeeID: row.Get("employee_id"),
		Email:      row.Get("email"),
		Password:   row.Get("password"),
		Role:       roles.Role(row.Get("role")),
		IsActive:   strings.EqualFold(row.Get("is_active"), "true"),
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
