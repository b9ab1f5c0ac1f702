// Command chi demonstrates valtree with a chi router.
//
// Run:
//
//	cd _example/chi && go run .
//
// Then fetch http://localhost:8080/openapi.json or post an order.
package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	v "github.com/Gobd/valtree"
	"github.com/Gobd/valtree/openapi"
	"github.com/Gobd/valtree/problem"
	"github.com/go-chi/chi/v5"
)

type Order struct {
	CustomerName string  `json:"customer_name"`
	ItemCount    int     `json:"item_count"`
	Total        float64 `json:"total"`
}

func (o *Order) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Bind(&o.CustomerName, v.Required, v.CharLength().Min(1).Max(200)),
		v.Bind(&o.ItemCount, v.Required, v.Min(1)),
		v.Bind(&o.Total, v.Required, v.Min(0.01)),
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	doc := openapi.DocBase("Example API (chi)", "Demonstrates valtree with chi", "0.1.0")

	openapi.Post(doc, "/orders", "createOrder", openapi.Endpoint{
		Summary:  "Create an order",
		Request:  Order{},
		Response: Order{},
	})

	r := chi.NewRouter()

	r.Get("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	})

	r.Post("/orders", func(w http.ResponseWriter, r *http.Request) {
		order, tree, err := problem.Decode[Order](r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if problem.Write(w, r, tree) {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(order)
	})

	logger.Info("listening", "addr", "http://localhost:8080")
	if err := http.ListenAndServe(":8080", r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
