// Command example demonstrates valtree with an HTTP server serving the
// generated OpenAPI document and a validated JSON endpoint.
//
// Run:
//
//	go run ./_example
//
// Then fetch http://localhost:8080/openapi.json or post an order:
//
//	curl -H 'Accept-Language: de' -d '{"customer_name":"","item_count":0}' localhost:8080/orders
package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	v "github.com/Gobd/valtree"
	"github.com/Gobd/valtree/message"
	"github.com/Gobd/valtree/openapi"
	"github.com/Gobd/valtree/problem"
)

// Order is a sample request/response type.
type Order struct {
	CustomerName string   `json:"customer_name"`
	ItemCount    int      `json:"item_count"`
	Total        float64  `json:"total"`
	Tags         []string `json:"tags"`
}

func (o *Order) Rules() []*v.FieldRules {
	return []*v.FieldRules{
		v.Bind(&o.CustomerName, v.Required, v.CharLength().Min(1).Max(200)),
		v.Bind(&o.ItemCount, v.Required, v.Min(1)),
		v.Bind(&o.Total, v.Required, v.Min(0.01)),
		v.Bind(&o.Tags, v.Length().Max(5), v.Each(v.CharLength().Max(20))),
	}
}

const messages = `
en:
  required: "Is required"
  range: "Must be at least %{min}"
de:
  required: "Pflichtfeld"
  range: "Muss mindestens %{min} sein"
`

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	catalog, err := message.Parse([]byte(messages), message.WithLogger(logger))
	if err != nil {
		logger.Error("loading messages", "error", err)
		os.Exit(1)
	}

	doc := openapi.DocBase("Example API", "Demonstrates valtree", "0.1.0")
	openapi.Post(doc, "/orders", "createOrder", openapi.Endpoint{
		Summary:  "Create an order",
		Request:  Order{},
		Response: Order{},
	})

	http.HandleFunc("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	})

	http.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		order, tree, err := problem.Decode[Order](r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if problem.Write(w, r, tree, problem.WithCatalog(catalog)) {
			logger.Info("order rejected", "errors", tree)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(order)
	})

	logger.Info("listening", "addr", "http://localhost:8080")
	if err := http.ListenAndServe(":8080", nil); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
