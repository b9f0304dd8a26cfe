// Package web serves the customer pages over HTTP.
//
// Every request gets its own DataContext from the configured factory, runs
// one controller action and renders the action's result: views as JSON
// documents of the form
//
//	{"view": "Index", "model": [...], "errors": {"Name": ["Required"]}}
//
// and redirects as 303 See Other to the target action's route.
//
// # Routes
//
//	GET  /                        home, all customers
//	GET  /privacy
//	GET  /error
//	GET  /customers               list
//	POST /customers               list filtered by the "filter" form value
//	GET  /customers/add
//	POST /customers/add
//	GET  /customers/update/{id}
//	POST /customers/update
//	GET  /customers/delete/{id}
//	POST /customers/delete
//	GET  /employees
//	GET  /products
package web
