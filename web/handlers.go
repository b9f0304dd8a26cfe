package web

import (
	"log"
	"net/http"
	"time"

	"github.com/acksell/custmvc/controllers"
	"github.com/acksell/custmvc/mvc"
)

// handler holds the HTTP handlers.
type handler struct {
	newDB  DataContextFactory
	logger *log.Logger
	now    func() time.Time
}

func newHandler(newDB DataContextFactory, logger *log.Logger) *handler {
	return &handler{newDB: newDB, logger: logger, now: time.Now}
}

// RegisterRoutes registers all routes on the given mux.
func (h *handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.homeIndex)
	mux.HandleFunc("GET /privacy", h.homePrivacy)
	mux.HandleFunc("GET /error", h.homeError)

	mux.HandleFunc("GET /customers", h.customersIndex)
	mux.HandleFunc("POST /customers", h.customersSearch)
	mux.HandleFunc("GET /customers/add", h.customersAddForm)
	mux.HandleFunc("POST /customers/add", h.customersAdd)
	mux.HandleFunc("GET /customers/update/{id}", h.customersUpdateForm)
	mux.HandleFunc("POST /customers/update", h.customersUpdate)
	mux.HandleFunc("GET /customers/delete/{id}", h.customersDeleteForm)
	mux.HandleFunc("POST /customers/delete", h.customersDelete)

	mux.HandleFunc("GET /employees", h.employeesIndex)
	mux.HandleFunc("GET /products", h.productsIndex)
}

// home builds the home controller. Pages that never touch the store pass a
// nil db so no unit of work is created for them.
func (h *handler) home(db controllers.DataContext) *controllers.HomeController {
	return controllers.NewHomeController(h.logger, db)
}

func (h *handler) customers() *controllers.CustomersController {
	return controllers.NewCustomersController(h.newDB())
}

// action names the controller action being served, for view resolution
// and relative redirects.
type action struct {
	controller string
	name       string
}

func (h *handler) homeIndex(w http.ResponseWriter, r *http.Request) {
	res, err := h.home(h.newDB()).Index(r.Context())
	h.render(w, r, action{"Home", "Index"}, res, nil, err)
}

func (h *handler) homePrivacy(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, action{"Home", "Privacy"}, h.home(nil).Privacy(), nil, nil)
}

func (h *handler) homeError(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, action{"Home", "Error"}, h.home(nil).Error(RequestID(r.Context())), nil, nil)
}

func (h *handler) customersIndex(w http.ResponseWriter, r *http.Request) {
	res, err := h.customers().Index(r.Context())
	h.render(w, r, action{"Customers", "Index"}, res, nil, err)
}

func (h *handler) customersSearch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form: "+err.Error())
		return
	}
	res, err := h.customers().Search(r.Context(), r.PostForm.Get("filter"))
	h.render(w, r, action{"Customers", "Index"}, res, nil, err)
}

func (h *handler) customersAddForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, action{"Customers", "Add"}, h.customers().AddForm(), nil, nil)
}

func (h *handler) customersAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form: "+err.Error())
		return
	}
	state := &mvc.ModelState{}
	vm := bindAddCustomer(r.PostForm, state)
	addFieldErrors(state, vm.Validate(h.now()))

	res, err := h.customers().Add(r.Context(), vm, state)
	h.render(w, r, action{"Customers", "Add"}, res, state, err)
}

func (h *handler) customersUpdateForm(w http.ResponseWriter, r *http.Request) {
	res, err := h.customers().UpdateForm(r.Context(), r.PathValue("id"))
	h.render(w, r, action{"Customers", "Update"}, res, nil, err)
}

func (h *handler) customersUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form: "+err.Error())
		return
	}
	state := &mvc.ModelState{}
	vm := bindUpdateCustomer(r.PostForm, state)
	addFieldErrors(state, vm.Validate(h.now()))

	res, err := h.customers().Update(r.Context(), vm, state)
	h.render(w, r, action{"Customers", "Update"}, res, state, err)
}

func (h *handler) customersDeleteForm(w http.ResponseWriter, r *http.Request) {
	res, err := h.customers().DeleteForm(r.Context(), r.PathValue("id"))
	h.render(w, r, action{"Customers", "Delete"}, res, nil, err)
}

func (h *handler) customersDelete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form: "+err.Error())
		return
	}
	vm := bindDeleteCustomer(r.PostForm)
	res, err := h.customers().Delete(r.Context(), vm)
	h.render(w, r, action{"Customers", "Delete"}, res, nil, err)
}

func (h *handler) employeesIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, action{"Employees", "Index"}, controllers.EmployeesController{}.Index(), nil, nil)
}

func (h *handler) productsIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, action{"Products", "Index"}, controllers.ProductsController{}.Index(), nil, nil)
}
