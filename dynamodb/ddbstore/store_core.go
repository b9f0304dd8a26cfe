// Package ddbstore is a local DynamoDB-compatible store backed by BadgerDB.
//
// It implements the ddbiface.Client subset (PutItem, DeleteItem, Scan) so
// record tables can run against a directory on disk or fully in memory
// without an AWS account.
package ddbstore

import (
	"fmt"

	"github.com/acksell/custmvc/dynamodb/ddbiface"
	"github.com/acksell/custmvc/dynamodb/table"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/dgraph-io/badger/v4"
)

// Store is a DynamoDB-compatible store backed by BadgerDB.
type Store struct {
	db     *badger.DB
	tables map[string]*tableSchema
}

var _ ddbiface.Client = (*Store)(nil)

type tableSchema struct {
	definition table.TableDefinition
}

func (t *tableSchema) encodeKey(pk table.PrimaryKey) ([]byte, error) {
	return encodeBadgerKey(t.definition.Name, pk)
}

func (t *tableSchema) prefix() []byte {
	return tablePrefix(t.definition.Name)
}

// StoreOptions configures the BadgerDB store.
type StoreOptions struct {
	// Path to the database directory. If empty, uses in-memory mode.
	Path string
	// InMemory forces in-memory mode even if Path is set.
	InMemory bool
	// Logger for BadgerDB. If nil, logging is disabled.
	Logger badger.Logger
}

// New creates a new BadgerDB-backed DynamoDB store serving the given tables.
func New(opts StoreOptions, defs ...table.TableDefinition) (*Store, error) {
	badgerOpts := badger.DefaultOptions(opts.Path)

	if opts.Path == "" || opts.InMemory {
		badgerOpts = badgerOpts.WithDir("").WithValueDir("").WithInMemory(true)
	}

	if opts.Logger != nil {
		badgerOpts = badgerOpts.WithLogger(opts.Logger)
	} else {
		badgerOpts = badgerOpts.WithLogger(nil)
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}

	tables := make(map[string]*tableSchema, len(defs))
	for _, def := range defs {
		tables[def.Name] = &tableSchema{definition: def}
	}

	return &Store{
		db:     db,
		tables: tables,
	}, nil
}

// Close closes the BadgerDB database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) getTable(tableName *string) (*tableSchema, error) {
	if tableName == nil {
		return nil, fmt.Errorf("table name is required")
	}
	schema, ok := s.tables[*tableName]
	if !ok {
		return nil, &types.ResourceNotFoundException{
			Message: ptrStr("table not found: " + *tableName),
		}
	}
	return schema, nil
}
