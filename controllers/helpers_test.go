package controllers

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/acksell/custmvc/model"
	"github.com/acksell/custmvc/record"
	"github.com/google/uuid"
)

type fakeDataContext struct {
	customers *record.Fake[*model.Customer]
	saves     int
	saveErr   error
}

func newFakeDataContext(customers *[]*model.Customer) *fakeDataContext {
	return &fakeDataContext{customers: record.NewFake(customers)}
}

func (c *fakeDataContext) Customers() record.Collection[*model.Customer] {
	return c.customers
}

func (c *fakeDataContext) SaveChanges(ctx context.Context) error {
	c.saves++
	return c.saveErr
}

var errStore = errors.New("store unavailable")

// brokenDataContext fails every query.
type brokenDataContext struct{}

func (brokenDataContext) Customers() record.Collection[*model.Customer] { return brokenCollection{} }
func (brokenDataContext) SaveChanges(context.Context) error            { return errStore }

type brokenCollection struct{}

func (brokenCollection) Query(context.Context) (iter.Seq[*model.Customer], error) {
	return nil, errStore
}

func (brokenCollection) Insert(context.Context, *model.Customer) (*record.Generated, error) {
	return nil, errStore
}

func (brokenCollection) Remove(context.Context, *model.Customer) error { return errStore }

func testCustomers() []*model.Customer {
	return []*model.Customer{
		{
			ID:          uuid.NewString(),
			Name:        "Alice",
			Email:       "alice@example.com",
			Phone:       "1234567890",
			Address:     "123 Street",
			DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          uuid.NewString(),
			Name:        "Bob",
			Email:       "bob@example.com",
			Phone:       "0987654321",
			Address:     "456 Avenue",
			DateOfBirth: time.Date(1985, 5, 5, 0, 0, 0, 0, time.UTC),
		},
	}
}
