package controllers

import (
	"context"
	"fmt"

	"github.com/acksell/custmvc/model"
	"github.com/acksell/custmvc/mvc"
	"github.com/acksell/custmvc/record"
)

const actionIndex = "Index"

// CustomersController serves the customer CRUD pages.
type CustomersController struct {
	db DataContext
}

func NewCustomersController(db DataContext) *CustomersController {
	return &CustomersController{db: db}
}

// Index lists all customers.
func (c *CustomersController) Index(ctx context.Context) (mvc.Result, error) {
	customers, err := allCustomers(ctx, c.db)
	if err != nil {
		return nil, err
	}
	return mvc.View(customers), nil
}

// Search lists the customers whose name contains filter. An empty filter
// lists everyone.
func (c *CustomersController) Search(ctx context.Context, filter string) (mvc.Result, error) {
	seq, err := c.db.Customers().Query(ctx)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	if filter != "" {
		seq = record.Filter(seq, func(cu *model.Customer) bool { return cu.NameContains(filter) })
	}
	return &mvc.ViewResult{ViewName: actionIndex, Model: record.Collect(seq)}, nil
}

func (c *CustomersController) AddForm() mvc.Result {
	return mvc.View(nil)
}

// Add creates a customer from the form and returns to the list.
func (c *CustomersController) Add(ctx context.Context, vm model.AddCustomerViewModel, state *mvc.ModelState) (mvc.Result, error) {
	if !state.IsValid() {
		return mvc.View(vm), nil
	}
	if _, err := c.db.Customers().Insert(ctx, model.NewCustomer(vm)); err != nil {
		return nil, fmt.Errorf("insert customer: %w", err)
	}
	if err := c.db.SaveChanges(ctx); err != nil {
		return nil, fmt.Errorf("save changes: %w", err)
	}
	return mvc.RedirectToAction(actionIndex), nil
}

// UpdateForm shows the edit form for the customer with the given id.
func (c *CustomersController) UpdateForm(ctx context.Context, id string) (mvc.Result, error) {
	cu, ok, err := findCustomer(ctx, c.db, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return mvc.RedirectToAction(actionIndex), nil
	}
	return mvc.View(model.UpdateViewOf(cu)), nil
}

// Update applies the edit form. Unknown customers are ignored.
func (c *CustomersController) Update(ctx context.Context, vm model.UpdateCustomerViewModel, state *mvc.ModelState) (mvc.Result, error) {
	if !state.IsValid() {
		return mvc.View(vm), nil
	}
	cu, ok, err := findCustomer(ctx, c.db, vm.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return mvc.RedirectToAction(actionIndex), nil
	}
	cu.Apply(vm)
	if err := c.db.SaveChanges(ctx); err != nil {
		return nil, fmt.Errorf("save changes: %w", err)
	}
	return mvc.RedirectToAction(actionIndex), nil
}

// DeleteForm shows the delete confirmation for the customer with the given id.
func (c *CustomersController) DeleteForm(ctx context.Context, id string) (mvc.Result, error) {
	cu, ok, err := findCustomer(ctx, c.db, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return mvc.RedirectToAction(actionIndex), nil
	}
	return mvc.View(model.DeleteViewOf(cu)), nil
}

// Delete removes the customer named by the form.
func (c *CustomersController) Delete(ctx context.Context, vm model.DeleteCustomerViewModel) (mvc.Result, error) {
	cu, ok, err := findCustomer(ctx, c.db, vm.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return mvc.RedirectToAction(actionIndex), nil
	}
	if err := c.db.Customers().Remove(ctx, cu); err != nil {
		return nil, fmt.Errorf("remove customer: %w", err)
	}
	if err := c.db.SaveChanges(ctx); err != nil {
		return nil, fmt.Errorf("save changes: %w", err)
	}
	return mvc.RedirectToAction(actionIndex), nil
}
