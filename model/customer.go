// Package model holds the customer entity and the view models exchanged with
// the customer pages.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire format for dates of birth in forms.
const DateLayout = "2006-01-02"

// Customer is the persisted customer record.
type Customer struct {
	ID          string    `dynamodbav:"id" json:"id"`
	Name        string    `dynamodbav:"name" json:"name"`
	Email       string    `dynamodbav:"email" json:"email"`
	Phone       string    `dynamodbav:"phone" json:"phone"`
	Address     string    `dynamodbav:"address" json:"address"`
	DateOfBirth time.Time `dynamodbav:"dateOfBirth" json:"dateOfBirth"`
}

// NewCustomer creates a customer with a fresh random ID from the add form.
func NewCustomer(vm AddCustomerViewModel) *Customer {
	return &Customer{
		ID:          uuid.NewString(),
		Name:        vm.Name,
		Email:       vm.Email,
		Phone:       vm.Phone,
		Address:     vm.Address,
		DateOfBirth: vm.DateOfBirth,
	}
}

// Apply copies the editable fields of vm onto c. The ID is left untouched.
func (c *Customer) Apply(vm UpdateCustomerViewModel) {
	c.Name = vm.Name
	c.Email = vm.Email
	c.Phone = vm.Phone
	c.Address = vm.Address
	c.DateOfBirth = vm.DateOfBirth
}

// NameContains reports whether the customer's name contains s, ignoring case.
func (c *Customer) NameContains(s string) bool {
	return strings.Contains(strings.ToLower(c.Name), strings.ToLower(s))
}

// ValidID reports whether id is a well formed customer ID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
