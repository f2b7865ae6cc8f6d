package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"hospedaria/internal/entities"
	"hospedaria/internal/service"

	"github.com/gorilla/mux"
)

type PropertyHandler struct {
	Service *service.PropertyService
}

func NewPropertyHandler(svc *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{Service: svc}
}

// ListProperties atende a busca do app com os filtros de cidade, faixa de
// preço da diária e hóspedes.
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	filters := entities.PropertyFilters{
		City: r.URL.Query().Get("city"),
	}
	if v := r.URL.Query().Get("min_price"); v != "" {
		filters.MinPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := r.URL.Query().Get("max_price"); v != "" {
		filters.MaxPrice, _ = strconv.ParseFloat(v, 64)
	}
	if v := r.URL.Query().Get("guests"); v != "" {
		filters.Guests, _ = strconv.Atoi(v)
	}

	properties, err := h.Service.ListProperties(filters)
	if err != nil {
		http.Error(w, "Could not list properties", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(properties)
}

func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	property, err := h.Service.GetProperty(id)
	if err != nil {
		http.Error(w, "Property not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(property)
}

func (h *PropertyHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.Service.ListCities()
	if err != nil {
		http.Error(w, "Could not list cities", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cities)
}
