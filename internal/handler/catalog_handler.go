package handler

import (
	"net/http"

	"github.com/missaelcorm/notas-service/internal/service"
)

// CatalogHandler exposes the customer, address and product CRUD endpoints.
type CatalogHandler struct {
	catalog service.CatalogService
}

func NewCatalogHandler(catalog service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /customers", h.createCustomer)
	mux.HandleFunc("GET /customers", h.listCustomers)
	mux.HandleFunc("GET /customers/{id}", h.getCustomer)
	mux.HandleFunc("PUT /customers/{id}", h.updateCustomer)
	mux.HandleFunc("DELETE /customers/{id}", h.deleteCustomer)

	mux.HandleFunc("POST /addresses", h.createAddress)
	mux.HandleFunc("GET /addresses", h.listAddresses)
	mux.HandleFunc("GET /addresses/{id}", h.getAddress)
	mux.HandleFunc("PUT /addresses/{id}", h.updateAddress)
	mux.HandleFunc("DELETE /addresses/{id}", h.deleteAddress)

	mux.HandleFunc("POST /products", h.createProduct)
	mux.HandleFunc("GET /products", h.listProducts)
	mux.HandleFunc("GET /products/{id}", h.getProduct)
	mux.HandleFunc("PUT /products/{id}", h.updateProduct)
	mux.HandleFunc("DELETE /products/{id}", h.deleteProduct)
}

// ===== Customers =====

func (h *CatalogHandler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var input service.CustomerInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	customer, err := h.catalog.CreateCustomer(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *CatalogHandler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.catalog.ListCustomers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *CatalogHandler) getCustomer(w http.ResponseWriter, r *http.Request) {
	customer, err := h.catalog.GetCustomer(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *CatalogHandler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	var input service.CustomerInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	customer, err := h.catalog.UpdateCustomer(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *CatalogHandler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteCustomer(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "customer deleted"})
}

// ===== Addresses =====

func (h *CatalogHandler) createAddress(w http.ResponseWriter, r *http.Request) {
	var input service.AddressInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	address, err := h.catalog.CreateAddress(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, address)
}

func (h *CatalogHandler) listAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.catalog.ListAddresses(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, addresses)
}

func (h *CatalogHandler) getAddress(w http.ResponseWriter, r *http.Request) {
	address, err := h.catalog.GetAddress(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, address)
}

func (h *CatalogHandler) updateAddress(w http.ResponseWriter, r *http.Request) {
	var input service.AddressInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	address, err := h.catalog.UpdateAddress(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, address)
}

func (h *CatalogHandler) deleteAddress(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteAddress(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "address deleted"})
}

// ===== Products =====

func (h *CatalogHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var input service.ProductInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	product, err := h.catalog.CreateProduct(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *CatalogHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var input service.ProductInput
	if err := decodeBody(r, &input); err != nil {
		writeError(w, err)
		return
	}
	product, err := h.catalog.UpdateProduct(r.Context(), r.PathValue("id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
