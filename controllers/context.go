// Package controllers implements the customer, home, employee and product
// pages as thin actions over a DataContext.
package controllers

import (
	"context"
	"fmt"

	"github.com/acksell/custmvc/model"
	"github.com/acksell/custmvc/record"
)

// DataContext is the unit of work the controllers run against. Mutations
// made through Customers become durable on SaveChanges.
type DataContext interface {
	Customers() record.Collection[*model.Customer]
	SaveChanges(ctx context.Context) error
}

func allCustomers(ctx context.Context, db DataContext) ([]*model.Customer, error) {
	seq, err := db.Customers().Query(ctx)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	return record.Collect(seq), nil
}

func findCustomer(ctx context.Context, db DataContext, id string) (*model.Customer, bool, error) {
	if !model.ValidID(id) {
		return nil, false, nil
	}
	seq, err := db.Customers().Query(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("query customers: %w", err)
	}
	c, ok := record.First(seq, func(c *model.Customer) bool { return c.ID == id })
	return c, ok, nil
}
