package ddbrecord

import (
	"context"

	"github.com/acksell/custmvc/dynamodb/ddbiface"
	"github.com/acksell/custmvc/dynamodb/table"
	"github.com/acksell/custmvc/model"
	"github.com/acksell/custmvc/record"
)

// DefaultCustomersTable is the table name used when none is configured.
const DefaultCustomersTable = "customers"

// CustomersTable defines the customers table: a single string partition key.
func CustomersTable(name string) table.TableDefinition {
	if name == "" {
		name = DefaultCustomersTable
	}
	return table.TableDefinition{
		Name: name,
		KeyDefinitions: table.PrimaryKeyDefinition{
			PartitionKey: table.KeyDef{Name: "id", Kind: table.KeyKindS},
		},
	}
}

// Context is the customer unit of work over DynamoDB.
type Context struct {
	customers *Table[*model.Customer]
}

// NewContext creates a Context using the given customers table definition.
func NewContext(client ddbiface.Client, customers table.TableDefinition, opts ...Option) *Context {
	return &Context{
		customers: NewTable[*model.Customer](client, customers, opts...),
	}
}

func (c *Context) Customers() record.Collection[*model.Customer] {
	return c.customers
}

func (c *Context) SaveChanges(ctx context.Context) error {
	return c.customers.SaveChanges(ctx)
}
