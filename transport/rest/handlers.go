package rest

import (
	"net/http"

	"github.com/rocketscienceinc/arcade-backend/internal/arcade"
	"github.com/rocketscienceinc/arcade-backend/pkg/handlers"
)

type Handlers interface {
	PingHandler(w http.ResponseWriter, r *http.Request)
	CatalogHandler(w http.ResponseWriter, r *http.Request)
}

type catalogEntry struct {
	arcade.Entry
	Route string `json:"route"`
}

type restHandlers struct {
	catalog func() []arcade.Entry
}

func NewHandlers(catalog func() []arcade.Entry) Handlers {
	return &restHandlers{
		catalog: catalog,
	}
}

func (that *restHandlers) PingHandler(w http.ResponseWriter, r *http.Request) {
	handlers.PingHandler(w, r)
}

// CatalogHandler - the home screen, every game in display order.
func (that *restHandlers) CatalogHandler(w http.ResponseWriter, _ *http.Request) {
	entries := that.catalog()

	response := make([]catalogEntry, 0, len(entries))
	for _, entry := range entries {
		response = append(response, catalogEntry{
			Entry: entry,
			Route: "/" + string(entry.Kind),
		})
	}

	handlers.WriteJSON(w, http.StatusOK, response)
}
