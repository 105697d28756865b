package entity

import "time"

// User representa un usuario del sistema. Cada usuario es dueño de su propia
// partición de artículos, transacciones y proformas.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Name         string
	BusinessName string // razón social para encabezados de proforma
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
