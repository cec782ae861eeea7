package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/Cheertaboi/bookverse-storefront/internal/api/handlers"
	"github.com/Cheertaboi/bookverse-storefront/internal/api/middleware"
	"github.com/Cheertaboi/bookverse-storefront/internal/apiclient"
	"github.com/Cheertaboi/bookverse-storefront/internal/cart"
	"github.com/Cheertaboi/bookverse-storefront/internal/catalog"
	"github.com/Cheertaboi/bookverse-storefront/internal/config"
	"github.com/Cheertaboi/bookverse-storefront/internal/models"
	"github.com/Cheertaboi/bookverse-storefront/internal/pricing"
	"github.com/Cheertaboi/bookverse-storefront/internal/service"
	"github.com/Cheertaboi/bookverse-storefront/internal/session"
)

type Deps struct {
	Config   config.Config
	API      *apiclient.Client
	Sessions *session.Manager
	Log      *zap.Logger
}

// NewRouter builds the HTTP router for the storefront.
func NewRouter(d Deps) http.Handler {
	cfg, log := d.Config, d.Log
	promos := pricing.NewLoader(d.API, log)

	catalogH := handlers.NewCatalogHandler(catalog.NewService(d.API, promos, cfg.PromotionTZ, log), d.API, log)
	authH := handlers.NewAuthHandler(d.API, d.Sessions, log)
	cartH := handlers.NewCartHandler(d.API, promos, d.Sessions, handlers.CartSettings{
		Pricing:          cart.Pricing{ShippingFee: cfg.ShippingFee, FreeShippingThreshold: cfg.FreeShippingThreshold},
		OutOfStockNotice: cfg.OutOfStockNotice,
		Location:         cfg.PromotionTZ,
	}, log)
	checkoutH := handlers.NewCheckoutHandler(cartH, service.NewCheckoutService(d.API, cfg.VNDRate, log), d.Sessions, log)
	orderH := handlers.NewOrderHandler(service.NewOrderService(d.API), d.API, log)
	reviewH := handlers.NewReviewHandler(d.API, log)
	notifyH := handlers.NewNotificationHandler(d.API, cfg.PollInterval, cfg.CORSOrigins, log)
	bookH := handlers.NewBookHandler(d.API, log)
	categoryH := handlers.NewCategoryHandler(d.API, log)
	promotionH := handlers.NewPromotionHandler(service.NewPromotionService(d.API, promos, cfg.PromotionTZ, log), log)
	adminH := handlers.NewAdminHandler(d.API, log)
	publisherH := handlers.NewPublisherHandler(d.API, log)

	sessions := &middleware.Sessions{Manager: d.Sessions, TTL: cfg.SessionTTL, Secure: cfg.CookieSecure, Log: log}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Current-Route"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(sessions.Handler)

		r.Get("/home", catalogH.Home)
		r.Get("/books", catalogH.Books)
		r.Get("/books/{id}", catalogH.Book)
		r.Get("/books/{id}/reviews", reviewH.List)
		r.Get("/categories", catalogH.Categories)
		r.Get("/authors", catalogH.Authors)
		r.Get("/authors/{id}", catalogH.Author)
		r.Get("/publishers", catalogH.Publishers)
		r.Get("/publishers/{id}", catalogH.Publisher)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signin", authH.SignIn)
			r.Post("/signout", authH.SignOut)
			r.Post("/refresh", authH.Refresh)
			r.Post("/signup", authH.SignUp)
			r.Post("/otp/send", authH.SendOTP)
			r.Post("/otp/verify", authH.VerifyOTP)
			r.Post("/reset-password", authH.ResetPassword)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSignIn)
				r.Get("/me", authH.Me)
				r.Put("/me", authH.UpdateMe)
				r.Put("/password", authH.ChangePassword)
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartH.View)
			r.Delete("/", cartH.Clear)
			r.Post("/items", cartH.Add)
			r.Put("/items/{bookId}", cartH.UpdateQuantity)
			r.Delete("/items/{bookId}", cartH.Remove)
			r.Post("/items/{bookId}/toggle", cartH.ToggleSelect)
			r.Post("/select-all", cartH.ToggleSelectAll)
			r.Delete("/selected", cartH.RemoveSelected)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSignIn)

			r.Post("/checkout", checkoutH.Checkout)
			r.Get("/payments/vnpay-return", checkoutH.VNPayReturn)

			r.Get("/orders", orderH.MyOrders)
			r.Get("/orders/{id}", orderH.MyOrder)
			r.Put("/orders/{id}/cancel", orderH.Cancel)
			r.Put("/orders/{id}/address", orderH.ChangeAddress)

			r.Get("/books/{id}/reviewed", reviewH.Reviewed)
			r.Post("/books/{id}/reviews", reviewH.Create)
			r.Put("/books/{id}/reviews", reviewH.Update)
			r.Delete("/books/{id}/reviews", reviewH.Delete)

			r.Get("/notifications", notifyH.Mine)
			r.Get("/notifications/unread-count", notifyH.UnreadCount)
			r.Get("/notifications/ws", notifyH.Stream)
			r.Put("/notifications/read-all", notifyH.MarkAllRead)
			r.Put("/notifications/{id}/read", notifyH.MarkRead)
			r.Delete("/notifications/{id}", notifyH.DeleteMine)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin, models.RoleStaff))

			r.Get("/books", bookH.List)
			r.Post("/books", bookH.Create)
			r.Get("/books/{id}", bookH.Get)
			r.Put("/books/{id}", bookH.Update)
			r.Put("/books/{id}/active", bookH.SetActive)
			r.Post("/uploads", bookH.Upload)

			r.Get("/sup-categories", categoryH.ListSup)
			r.Post("/sup-categories", categoryH.CreateSup)
			r.Put("/sup-categories/{id}", categoryH.UpdateSup)
			r.Put("/sup-categories/{id}/active", categoryH.SetSupActive)
			r.Get("/sub-categories", categoryH.ListSub)
			r.Post("/sub-categories", categoryH.CreateSub)
			r.Get("/sub-categories/{id}", categoryH.GetSub)
			r.Put("/sub-categories/{id}", categoryH.UpdateSub)
			r.Put("/sub-categories/{id}/active", categoryH.SetSubActive)

			r.Get("/promotions", promotionH.List)
			r.Post("/promotions", promotionH.Create)
			r.Get("/promotions/overview", promotionH.Overview)
			r.Get("/promotions/{id}", promotionH.Get)
			r.Put("/promotions/{id}", promotionH.Update)
			r.Put("/promotions/{id}/active", promotionH.SetActive)

			r.Get("/publishers", publisherH.List)
			r.Post("/publishers", publisherH.Create)
			r.Get("/publishers/{id}", publisherH.Get)
			r.Put("/publishers/{id}", publisherH.Update)
			r.Put("/publishers/{id}/active", publisherH.SetActive)

			r.Get("/orders", orderH.List)
			r.Get("/orders/{id}", orderH.Get)
			r.Put("/orders/{id}", orderH.UpdateStatus)

			r.Get("/reviews", reviewH.All)
			r.Delete("/books/{id}/reviews", reviewH.Remove)

			r.Get("/notifications", notifyH.List)
			r.Post("/notifications", notifyH.Create)
			r.Put("/notifications/{id}", notifyH.Update)
			r.Delete("/notifications/{id}", notifyH.Delete)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleAdmin))
				r.Get("/users", adminH.Users)
				r.Post("/users", adminH.CreateUser)
				r.Put("/users/{id}", adminH.UpdateUser)
				r.Put("/users/{id}/role", adminH.ChangeRole)
				r.Put("/users/{id}/active", adminH.SetUserActive)
				r.Get("/statistics", adminH.Statistics)
			})
		})
	})

	return r
}
