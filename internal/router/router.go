package router

import (
	"net/http"
	"strings"

	"agri-pos/internal/handler"
	"agri-pos/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
func New(
	productHandler *handler.ProductHandler,
	customerHandler *handler.CustomerHandler,
	orderHandler *handler.OrderHandler,
	posHandler *handler.PosHandler,
	contentHandler *handler.ContentHandler,
	reportHandler *handler.ReportHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	mux.HandleFunc("/api/meta", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		contentHandler.Meta(w, r)
	})

	mux.HandleFunc("/api/catalog/reload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		posHandler.Reload(w, r)
	})

	// Products
	mux.HandleFunc("/api/products", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			productHandler.List(w, r)
		case http.MethodPost:
			productHandler.Create(w, r)
		default:
			methodNotAllowed(w)
		}
	})
	mux.HandleFunc("/api/products/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/products/")
		if id == "" {
			http.NotFound(w, r)
			return
		}
		if id == "low-stock" {
			if r.Method != http.MethodGet {
				methodNotAllowed(w)
				return
			}
			productHandler.LowStock(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
			productHandler.GetByID(w, r, id)
		case http.MethodPut:
			productHandler.Update(w, r, id)
		case http.MethodDelete:
			productHandler.Delete(w, r, id)
		default:
			methodNotAllowed(w)
		}
	})

	// Customers
	mux.HandleFunc("/api/customers", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			customerHandler.List(w, r)
		case http.MethodPost:
			customerHandler.Create(w, r)
		default:
			methodNotAllowed(w)
		}
	})
	mux.HandleFunc("/api/customers/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/customers/")
		if rest == "" {
			http.NotFound(w, r)
			return
		}
		if rest == "areas" {
			if r.Method != http.MethodGet {
				methodNotAllowed(w)
				return
			}
			customerHandler.Areas(w, r)
			return
		}
		if id, ok := strings.CutSuffix(rest, "/orders"); ok {
			if r.Method != http.MethodGet {
				methodNotAllowed(w)
				return
			}
			customerHandler.History(w, r, id)
			return
		}
		switch r.Method {
		case http.MethodGet:
			customerHandler.GetByID(w, r, rest)
		case http.MethodPut:
			customerHandler.Update(w, r, rest)
		case http.MethodDelete:
			customerHandler.Delete(w, r, rest)
		default:
			methodNotAllowed(w)
		}
	})

	// Orders (read-only; created via POS checkout)
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		orderHandler.List(w, r)
	})
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/orders/")
		if id == "" || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		orderHandler.GetByID(w, r, id)
	})

	// POS terminal
	mux.HandleFunc("/api/pos/cart", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			posHandler.Cart(w, r)
		case http.MethodDelete:
			posHandler.ClearCart(w, r)
		default:
			methodNotAllowed(w)
		}
	})
	mux.HandleFunc("/api/pos/cart/lines", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		posHandler.AddLine(w, r)
	})
	mux.HandleFunc("/api/pos/cart/lines/", func(w http.ResponseWriter, r *http.Request) {
		index := strings.TrimPrefix(r.URL.Path, "/api/pos/cart/lines/")
		if index == "" {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodPost:
			posHandler.AdjustLine(w, r, index)
		case http.MethodDelete:
			posHandler.RemoveLine(w, r, index)
		default:
			methodNotAllowed(w)
		}
	})
	mux.HandleFunc("/api/pos/customer", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		posHandler.LookupCustomer(w, r)
	})
	mux.HandleFunc("/api/pos/checkout", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		posHandler.Checkout(w, r)
	})

	// Advisory content
	mux.HandleFunc("/api/pests", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			contentHandler.ListPests(w, r)
		case http.MethodPost:
			contentHandler.CreatePest(w, r)
		default:
			methodNotAllowed(w)
		}
	})
	mux.HandleFunc("/api/pests/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/pests/")
		if id == "" {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodPut:
			contentHandler.UpdatePest(w, r, id)
		case http.MethodDelete:
			contentHandler.DeletePest(w, r, id)
		default:
			methodNotAllowed(w)
		}
	})
	mux.HandleFunc("/api/articles", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			contentHandler.ListArticles(w, r)
		case http.MethodPost:
			contentHandler.CreateArticle(w, r)
		default:
			methodNotAllowed(w)
		}
	})
	mux.HandleFunc("/api/articles/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/articles/")
		if id == "" {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodPut:
			contentHandler.UpdateArticle(w, r, id)
		case http.MethodDelete:
			contentHandler.DeleteArticle(w, r, id)
		default:
			methodNotAllowed(w)
		}
	})

	// Reports
	mux.HandleFunc("/api/reports/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		reportHandler.Orders(w, r)
	})

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var root http.Handler = mux
	root = middleware.APIKeyAuth(apiKey, logger)(root)
	root = middleware.CORS(root)
	root = middleware.Logging(logger)(root)
	root = middleware.Recovery(logger)(root)

	return root
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
