package models

import "strings"

// Validate checks if the account meets all validation requirements
func (a *Account) Validate() error {
	return validate.Struct(a)
}

// BeforeCreate normalizes the account before it is stored
func (a *Account) BeforeCreate() {
	a.Email = strings.TrimSpace(a.Email)
	a.Name = strings.TrimSpace(a.Name)
}
