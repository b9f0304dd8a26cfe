package model

import "time"

// AddCustomerViewModel is the add form.
type AddCustomerViewModel struct {
	Name        string    `json:"name" validate:"required"`
	Email       string    `json:"email" validate:"required,email"`
	Phone       string    `json:"phone" validate:"omitempty,number"`
	Address     string    `json:"address"`
	DateOfBirth time.Time `json:"dateOfBirth" validate:"notfuture"`
}

// UpdateCustomerViewModel is the edit form. ID identifies the customer.
type UpdateCustomerViewModel struct {
	ID          string    `json:"id" validate:"uuid" field:"Id"`
	Name        string    `json:"name" validate:"required"`
	Email       string    `json:"email" validate:"required,email"`
	Phone       string    `json:"phone" validate:"omitempty,number"`
	Address     string    `json:"address"`
	DateOfBirth time.Time `json:"dateOfBirth" validate:"notfuture"`
}

// DeleteCustomerViewModel is the delete confirmation form.
type DeleteCustomerViewModel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	DateOfBirth time.Time `json:"dateOfBirth"`
}

// ErrorViewModel is rendered by the error page.
type ErrorViewModel struct {
	RequestID string `json:"requestId"`
}

// ShowRequestID reports whether there is a request ID worth displaying.
func (m ErrorViewModel) ShowRequestID() bool {
	return m.RequestID != ""
}

func UpdateViewOf(c *Customer) UpdateCustomerViewModel {
	return UpdateCustomerViewModel{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		DateOfBirth: c.DateOfBirth,
	}
}

func DeleteViewOf(c *Customer) DeleteCustomerViewModel {
	return DeleteCustomerViewModel{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		DateOfBirth: c.DateOfBirth,
	}
}
