package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/acksell/custmvc/model"
	"github.com/acksell/custmvc/mvc"
)

// viewDocument is the JSON body of a rendered view.
type viewDocument struct {
	View   string              `json:"view"`
	Model  any                 `json:"model"`
	Errors map[string][]string `json:"errors,omitempty"`
}

// render writes the outcome of an action. A non-nil err renders the error
// page with status 500.
func (h *handler) render(w http.ResponseWriter, r *http.Request, at action, res mvc.Result, state *mvc.ModelState, err error) {
	if err != nil {
		id := RequestID(r.Context())
		h.logger.Printf("%s %s: %v [%s]", r.Method, r.URL.Path, err, id)
		w.Header().Set("Cache-Control", "no-store,no-cache")
		writeJSON(w, http.StatusInternalServerError, viewDocument{
			View:  "Error",
			Model: model.ErrorViewModel{RequestID: id},
		})
		return
	}

	switch res := res.(type) {
	case *mvc.ViewResult:
		doc := viewDocument{View: res.ViewName, Model: res.Model}
		if doc.View == "" {
			doc.View = at.name
		}
		if !state.IsValid() {
			doc.Errors = make(map[string][]string)
			for _, f := range state.Fields() {
				doc.Errors[f] = state.Errors(f)
			}
		}
		if res.Cache != nil {
			w.Header().Set("Cache-Control", res.Cache.Header())
		}
		writeJSON(w, http.StatusOK, doc)
	case *mvc.RedirectToActionResult:
		controller := res.ControllerName
		if controller == "" {
			controller = at.controller
		}
		http.Redirect(w, r, ActionPath(controller, res.ActionName), http.StatusSeeOther)
	default:
		writeError(w, http.StatusInternalServerError, "unsupported action result")
	}
}

// ActionPath returns the route of a controller action: "/customers" for
// Customers.Index, "/customers/add" for Customers.Add and "/" for
// Home.Index.
func ActionPath(controller, action string) string {
	if controller == "Home" {
		if action == "Index" {
			return "/"
		}
		return "/" + strings.ToLower(action)
	}
	path := "/" + strings.ToLower(controller)
	if action != "Index" {
		path += "/" + strings.ToLower(action)
	}
	return path
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
