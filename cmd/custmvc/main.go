// custmvc serves the customer management pages and inspects their data.
//
// # Commands
//
//	custmvc serve   Start the web server
//	custmvc list    Print all customers as a table
//	custmvc check   Check the DynamoDB permissions of the AWS identity
//
// # Storage
//
// By default customers live in a local BadgerDB-backed DynamoDB emulation,
// in memory or under --db. With --aws (or aws.enabled in custmvc.yaml) the
// real DynamoDB service is used instead, with credentials resolved the usual
// AWS SDK way.
//
//	custmvc serve --db ./data
//	custmvc serve --memory
//	custmvc serve --aws --region eu-north-1 --table customers
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "serve":
		err = runServe(args)
	case "list", "ls":
		err = runList(args, os.Stdout)
	case "check":
		err = runCheck(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage()
		return
	case "version", "-v", "--version":
		fmt.Printf("custmvc version %s\n", version)
		return
	default:
		fmt.Fprintf(os.Stderr, "custmvc: unknown command %q\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "custmvc %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`custmvc - customer management

Usage:
  custmvc <command> [flags]

Commands:
  serve   Start the web server
  list    Print all customers
  check   Check DynamoDB permissions of the current AWS identity

Examples:
  # Serve with a local database:
  custmvc serve --db ./data

  # Serve against DynamoDB:
  custmvc serve --aws --region eu-north-1

  # Print the customers of a local database:
  custmvc list --db ./data

Configuration (optional):
  Create custmvc.yaml for defaults:

    dataDir: ./data      # local database directory
    port: 5000           # web server port
    table: customers     # customers table name
    aws:
      enabled: false     # use DynamoDB instead of the local database
      region: eu-north-1
      endpoint: ""       # e.g. http://localhost:8000 for DynamoDB Local

Run 'custmvc <command> --help' for more information on a command.`)
}
