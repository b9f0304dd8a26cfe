package controllers

import "github.com/acksell/custmvc/mvc"

// EmployeesController is a placeholder page.
type EmployeesController struct{}

func (EmployeesController) Index() mvc.Result {
	return mvc.View(nil)
}

// ProductsController is a placeholder page.
type ProductsController struct{}

func (ProductsController) Index() mvc.Result {
	return mvc.View(nil)
}
