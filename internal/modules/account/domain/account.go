package domain

import (
	"fmt"
	"strings"
)

// Account is a registered identity. The password is stored in plaintext by
// design: the registry is a local mock-auth store, not a credential vault.
// Emails are compared exactly, with no normalization.
type Account struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(a.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if a.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

// Session is the single active identity of the running instance. It is always
// replaced wholesale, never partially updated.
type Session struct {
	Authenticated bool   `json:"isAuthenticated"`
	Name          string `json:"name"`
	Email         string `json:"email"`
}

// Anonymous is the signed-out session state.
func Anonymous() Session {
	return Session{}
}

// ForAccount builds the authenticated session for an account.
func ForAccount(account Account) Session {
	return Session{Authenticated: true, Name: account.Name, Email: account.Email}
}
