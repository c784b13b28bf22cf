// Package supabasetest provee un data API PostgREST falso en memoria para
// tests: soporta las colecciones products y purchases con los filtros que
// usa la aplicación (select=*, id=eq.<id>, select=*,products(*)).
package supabasetest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Record un registro genérico tal como lo vería PostgREST.
type Record = map[string]any

// Server data API falso sobre httptest.Server.
type Server struct {
	mu             sync.Mutex
	products       map[int64]Record
	purchases      map[int64]Record
	nextProductID  int64
	nextPurchaseID int64

	// FailOn fuerza un 500 cuando devuelve true para la request; nil = nunca.
	FailOn func(r *http.Request) bool

	srv *httptest.Server
}

// New levanta el servidor falso. Cerrar con Close.
func New() *Server {
	s := &Server{
		products:       make(map[int64]Record),
		purchases:      make(map[int64]Record),
		nextProductID:  1,
		nextPurchaseID: 1,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/rest/v1/products", s.handleProducts)
	mux.HandleFunc("/rest/v1/purchases", s.handlePurchases)
	s.srv = httptest.NewServer(mux)
	return s
}

// URL devuelve la URL base (sin /rest/v1).
func (s *Server) URL() string { return s.srv.URL }

// Close apaga el servidor.
func (s *Server) Close() { s.srv.Close() }

// SeedProduct inserta un producto y devuelve su ID.
func (s *Server) SeedProduct(name string, price decimal.Decimal, stock int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextProductID
	s.nextProductID++
	s.products[id] = Record{
		"id":          id,
		"name":        name,
		"description": "",
		"price":       price.String(),
		"stock":       stock,
	}
	return id
}

// SeedPurchase inserta una compra y devuelve su ID.
func (s *Server) SeedPurchase(productID int64, quantity int, total decimal.Decimal, status string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextPurchaseID
	s.nextPurchaseID++
	s.purchases[id] = Record{
		"id":          id,
		"product_id":  productID,
		"quantity":    quantity,
		"total_price": total.String(),
		"status":      status,
	}
	return id
}

// Product devuelve una copia del registro o nil si no existe.
func (s *Server) Product(id int64) Record { return s.record(s.products, id) }

// Purchase devuelve una copia del registro o nil si no existe.
func (s *Server) Purchase(id int64) Record { return s.record(s.purchases, id) }

// ProductStock devuelve el stock actual del producto.
func (s *Server) ProductStock(id int64) int {
	rec := s.Product(id)
	if rec == nil {
		return -1
	}
	return IntField(rec, "stock")
}

// IntField lee un campo numérico de un registro (JSON decodifica a float64).
func IntField(rec Record, key string) int {
	switch v := rec[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// DecimalField lee un campo como decimal (acepta número o string).
func DecimalField(rec Record, key string) decimal.Decimal {
	d, _ := decimal.NewFromString(fmt.Sprint(rec[key]))
	return d
}

func (s *Server) record(coll map[int64]Record, id int64) Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := coll[id]
	if !ok {
		return nil
	}
	out := Record{}
	for k, v := range rec {
		out[k] = v
	}
	return out
}

// ── Handlers del dialecto PostgREST ───────────────────────────────────────────

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	s.handleCollection(w, r, s.products, &s.nextProductID, false)
}

func (s *Server) handlePurchases(w http.ResponseWriter, r *http.Request) {
	s.handleCollection(w, r, s.purchases, &s.nextPurchaseID, true)
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request, coll map[int64]Record, nextID *int64, embed bool) {
	if s.FailOn != nil && s.FailOn(r) {
		http.Error(w, `{"message":"internal"}`, http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, hasID := filterID(r)

	switch r.Method {
	case http.MethodGet:
		withProduct := embed && strings.Contains(r.URL.Query().Get("select"), "products(")
		out := make([]Record, 0)
		for recID, rec := range coll {
			if hasID && recID != id {
				continue
			}
			item := Record{}
			for k, v := range rec {
				item[k] = v
			}
			if withProduct {
				if prod, ok := s.products[int64(IntField(rec, "product_id"))]; ok {
					item["products"] = prod
				}
			}
			out = append(out, item)
		}
		writeJSON(w, http.StatusOK, out)

	case http.MethodPost:
		var rec Record
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, `{"message":"bad body"}`, http.StatusBadRequest)
			return
		}
		rec["id"] = *nextID
		coll[*nextID] = rec
		*nextID++
		w.WriteHeader(http.StatusCreated)

	case http.MethodPatch:
		if !hasID {
			http.Error(w, `{"message":"missing filter"}`, http.StatusBadRequest)
			return
		}
		rec, ok := coll[id]
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		var patch Record
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			http.Error(w, `{"message":"bad body"}`, http.StatusBadRequest)
			return
		}
		for k, v := range patch {
			rec[k] = v
		}
		w.WriteHeader(http.StatusNoContent)

	case http.MethodDelete:
		if !hasID {
			http.Error(w, `{"message":"missing filter"}`, http.StatusBadRequest)
			return
		}
		delete(coll, id)
		w.WriteHeader(http.StatusNoContent)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func filterID(r *http.Request) (int64, bool) {
	raw := r.URL.Query().Get("id")
	if !strings.HasPrefix(raw, "eq.") {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(raw, "eq."), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
