package models

import (
	"encoding/json"
	"fmt"
)

// Account represents a Text United user account (an employee of the company)
type Account struct {
	ID        int     `json:"id" yaml:"id"`
	Email     string  `json:"email" yaml:"email"`
	FirstName string  `json:"first_name" yaml:"first_name"`
	LastName  string  `json:"last_name" yaml:"last_name"`
	Phone     *string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Position  *string `json:"position,omitempty" yaml:"position,omitempty"`
}

// AccountFromJSON maps a remote employee object to an Account
func AccountFromJSON(data json.RawMessage) (*Account, error) {
	r, err := newFieldReader("account", data)
	if err != nil {
		return nil, err
	}

	account := &Account{
		ID:        r.intField("Id"),
		Email:     r.stringField("Email"),
		FirstName: r.stringField("FirstName"),
		LastName:  r.stringField("LastName"),
		Phone:     r.optionalStringField("Phone"),
		Position:  r.optionalStringField("Position"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return account, nil
}

func (a *Account) String() string {
	return fmt.Sprintf("id#%d %s", a.ID, a.Email)
}

// AccountsFromJSON maps a remote employee array; an empty array yields an empty slice
func AccountsFromJSON(data json.RawMessage) ([]*Account, error) {
	items, err := decodeArray("account", data)
	if err != nil {
		return nil, err
	}
	accounts := make([]*Account, 0, len(items))
	for _, item := range items {
		account, err := AccountFromJSON(item)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}
