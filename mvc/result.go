// Package mvc contains the action results and model state returned by
// controllers. Rendering a result onto an HTTP response is left to the web
// package.
package mvc

import (
	"strconv"
	"time"
)

// Result is what a controller action produces.
type Result interface {
	result()
}

// ViewResult renders a view. An empty ViewName means the view named after
// the action.
type ViewResult struct {
	ViewName string
	Model    any
	// Cache is nil when the action does not constrain response caching.
	Cache *ResponseCache
}

func (*ViewResult) result() {}

// RedirectToActionResult redirects the client to another action. An empty
// ControllerName means the current controller.
type RedirectToActionResult struct {
	ActionName     string
	ControllerName string
}

func (*RedirectToActionResult) result() {}

// View returns a ViewResult for the default view.
func View(model any) *ViewResult {
	return &ViewResult{Model: model}
}

// RedirectToAction redirects to action on the current controller.
func RedirectToAction(action string) *RedirectToActionResult {
	return &RedirectToActionResult{ActionName: action}
}

// CacheLocation says where a response may be cached.
type CacheLocation int

const (
	CacheLocationAny CacheLocation = iota
	CacheLocationClient
	CacheLocationNone
)

// ResponseCache describes the caching headers of a response.
type ResponseCache struct {
	Duration time.Duration
	Location CacheLocation
	NoStore  bool
}

// Header returns the Cache-Control value for c.
func (c ResponseCache) Header() string {
	if c.NoStore {
		if c.Location == CacheLocationNone {
			return "no-store,no-cache"
		}
		return "no-store"
	}
	var v string
	switch c.Location {
	case CacheLocationNone:
		return "no-cache"
	case CacheLocationClient:
		v = "private"
	default:
		v = "public"
	}
	return v + ",max-age=" + strconv.Itoa(int(c.Duration/time.Second))
}
