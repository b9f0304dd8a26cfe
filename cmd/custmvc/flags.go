package main

import (
	"flag"
	"fmt"
)

// storageFlags are shared by every command that opens the customers store.
type storageFlags struct {
	dataDir  *string
	memory   *bool
	table    *string
	useAWS   *bool
	region   *string
	endpoint *string
	verbose  *bool
}

// registerStorageFlags adds the storage flags to fs, defaulting to cfg.
func registerStorageFlags(fs *flag.FlagSet, cfg Config) *storageFlags {
	return &storageFlags{
		dataDir:  fs.String("db", cfg.DataDir, "path to the local database (empty for in-memory)"),
		memory:   fs.Bool("memory", false, "use an in-memory database even if a path is configured"),
		table:    fs.String("table", cfg.Table, "customers table name"),
		useAWS:   fs.Bool("aws", cfg.AWS.Enabled, "use DynamoDB instead of the local database"),
		region:   fs.String("region", cfg.AWS.Region, "AWS region"),
		endpoint: fs.String("endpoint", cfg.AWS.Endpoint, "DynamoDB endpoint override"),
		verbose:  fs.Bool("verbose", false, "log BadgerDB info and debug output"),
	}
}

// apply returns cfg with the flag values.
func (f *storageFlags) apply(cfg Config) Config {
	cfg.DataDir = *f.dataDir
	cfg.Table = *f.table
	cfg.AWS.Enabled = *f.useAWS
	cfg.AWS.Region = *f.region
	cfg.AWS.Endpoint = *f.endpoint
	return cfg
}

func (f *storageFlags) options(cfg Config) (backendOptions, error) {
	cfg = f.apply(cfg)
	if cfg.AWS.Enabled && *f.memory {
		return backendOptions{}, fmt.Errorf("--memory and --aws are mutually exclusive")
	}
	return backendOptions{cfg: cfg, memory: *f.memory, verbose: *f.verbose}, nil
}
