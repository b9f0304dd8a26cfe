package main

import (
	"context"
	"fmt"
	"log"

	"github.com/acksell/custmvc/dynamodb/ddbiface"
	"github.com/acksell/custmvc/dynamodb/ddbrecord"
	"github.com/acksell/custmvc/dynamodb/ddbstore"
	"github.com/acksell/custmvc/dynamodb/table"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// backend is an open customers store.
type backend struct {
	client ddbiface.Client
	def    table.TableDefinition
	// description is shown in the startup banner.
	description string
	close       func() error
}

func (b *backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// newContext starts a unit of work on the backend.
func (b *backend) newContext() *ddbrecord.Context {
	return ddbrecord.NewContext(b.client, b.def)
}

type backendOptions struct {
	cfg     Config
	memory  bool
	verbose bool
	logger  *log.Logger
}

func openBackend(ctx context.Context, opts backendOptions) (*backend, error) {
	def := ddbrecord.CustomersTable(opts.cfg.Table)
	if opts.cfg.AWS.Enabled {
		return openDynamoDB(ctx, opts.cfg.AWS, def, opts.logger)
	}
	return openLocal(opts.cfg.DataDir, opts.memory, opts.verbose, def, opts.logger)
}

func openLocal(dataDir string, memory, verbose bool, def table.TableDefinition, logger *log.Logger) (*backend, error) {
	inMemory := memory || dataDir == ""
	store, err := ddbstore.New(ddbstore.StoreOptions{
		Path:     dataDir,
		InMemory: inMemory,
		Logger:   &ddbstore.LogAdapter{Logger: logger, Verbose: verbose},
	}, def)
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	description := "In-memory (data will be lost on exit)"
	if !inMemory {
		description = "Database: " + dataDir
	}
	return &backend{client: store, def: def, description: description, close: store.Close}, nil
}

func openDynamoDB(ctx context.Context, cfg AWSConfig, def table.TableDefinition, logger *log.Logger) (*backend, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	// Local emulators accept any credentials, so only check the caller
	// against the real service.
	if cfg.Endpoint == "" {
		identity, err := sts.NewFromConfig(awsCfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
		if err != nil {
			return nil, fmt.Errorf("resolving AWS identity: %w", err)
		}
		logger.Printf("using DynamoDB in %s as %s", awsCfg.Region, aws.ToString(identity.Arn))
	}

	description := fmt.Sprintf("DynamoDB %s, table %s", awsCfg.Region, def.Name)
	if cfg.Endpoint != "" {
		description = fmt.Sprintf("DynamoDB at %s, table %s", cfg.Endpoint, def.Name)
	}
	return &backend{client: client, def: def, description: description}, nil
}
