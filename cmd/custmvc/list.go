package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/acksell/custmvc/model"
	"github.com/acksell/custmvc/record"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func runList(args []string, out io.Writer) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("list", flag.ExitOnError)
	filter := fs.String("filter", "", "only list customers whose name contains this")
	storage := registerStorageFlags(fs, cfg)
	fs.Usage = func() {
		fmt.Println(`custmvc list - Print all customers

Usage:
  custmvc list [flags]

Flags:`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts, err := storage.options(cfg)
	if err != nil {
		return err
	}
	opts.logger = log.New(os.Stderr, "", log.LstdFlags)

	ctx := context.Background()
	b, err := openBackend(ctx, opts)
	if err != nil {
		return err
	}
	defer b.Close()

	seq, err := b.newContext().Customers().Query(ctx)
	if err != nil {
		return fmt.Errorf("query customers: %w", err)
	}
	if *filter != "" {
		seq = record.Filter(seq, func(c *model.Customer) bool { return c.NameContains(*filter) })
	}
	customers := record.Collect(record.SortBy(seq, func(c *model.Customer) string {
		return strings.ToLower(c.Name)
	}))

	renderCustomers(out, customers)
	return nil
}

// renderCustomers writes customers as a table.
func renderCustomers(out io.Writer, customers []*model.Customer) {
	if len(customers) == 0 {
		fmt.Fprintln(out, "No customers found")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"ID", "NAME", "EMAIL", "PHONE", "ADDRESS", "BORN"})
	for _, c := range customers {
		born := ""
		if !c.DateOfBirth.IsZero() {
			born = c.DateOfBirth.Format(model.DateLayout)
		}
		t.AppendRow(table.Row{c.ID, c.Name, c.Email, c.Phone, c.Address, born})
	}
	t.AppendFooter(table.Row{"", text.Bold.Sprintf("%d customers", len(customers))})
	t.Render()
}
