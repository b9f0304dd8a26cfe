package web

import (
	"net/url"
	"strings"
	"time"

	"github.com/acksell/custmvc/model"
	"github.com/acksell/custmvc/mvc"
)

// Form field names, matching the JSON names of the view models.
const (
	fieldID          = "id"
	fieldName        = "name"
	fieldEmail       = "email"
	fieldPhone       = "phone"
	fieldAddress     = "address"
	fieldDateOfBirth = "dateOfBirth"
)

type contactForm struct {
	name, email, phone, address string
	dateOfBirth                 time.Time
}

func bindContact(form url.Values, state *mvc.ModelState) contactForm {
	c := contactForm{
		name:    strings.TrimSpace(form.Get(fieldName)),
		email:   strings.TrimSpace(form.Get(fieldEmail)),
		phone:   strings.TrimSpace(form.Get(fieldPhone)),
		address: strings.TrimSpace(form.Get(fieldAddress)),
	}
	if raw := strings.TrimSpace(form.Get(fieldDateOfBirth)); raw != "" {
		dob, err := time.Parse(model.DateLayout, raw)
		if err != nil {
			state.AddModelError("DateOfBirth", "Invalid date, expected "+model.DateLayout)
		} else {
			c.dateOfBirth = dob
		}
	}
	return c
}

func bindAddCustomer(form url.Values, state *mvc.ModelState) model.AddCustomerViewModel {
	c := bindContact(form, state)
	return model.AddCustomerViewModel{
		Name:        c.name,
		Email:       c.email,
		Phone:       c.phone,
		Address:     c.address,
		DateOfBirth: c.dateOfBirth,
	}
}

func bindUpdateCustomer(form url.Values, state *mvc.ModelState) model.UpdateCustomerViewModel {
	c := bindContact(form, state)
	return model.UpdateCustomerViewModel{
		ID:          strings.TrimSpace(form.Get(fieldID)),
		Name:        c.name,
		Email:       c.email,
		Phone:       c.phone,
		Address:     c.address,
		DateOfBirth: c.dateOfBirth,
	}
}

// bindDeleteCustomer only needs the id; the rest of the form is display.
func bindDeleteCustomer(form url.Values) model.DeleteCustomerViewModel {
	return model.DeleteCustomerViewModel{ID: strings.TrimSpace(form.Get(fieldID))}
}

func addFieldErrors(state *mvc.ModelState, errs []model.FieldError) {
	for _, e := range errs {
		state.AddModelError(e.Field, e.Message)
	}
}
