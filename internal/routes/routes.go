package routes

import (
	"github.com/AnshRaj112/goexplore-backend/internal/handlers"
	"github.com/AnshRaj112/goexplore-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers every endpoint. Routes in the session group need a valid token
// cookie; the admin group also looks up the caller's role. With adminOnlyCatalog set,
// package writes need the admin role too.
func SetupRoutes(r chi.Router, h *handlers.Handler, adminOnlyCatalog bool) {
	requireSession := middleware.RequireSession(h.Sessions)
	requireAdmin := middleware.RequireAdmin(h.Users)

	r.Get("/", h.Root)

	// Session cookie
	r.Post("/jwt", h.IssueSession)
	r.Post("/logout", h.Logout)

	// Users
	r.Get("/users/email/{email}", h.GetUserByEmail)
	r.Post("/users", h.CreateUser)
	r.Post("/users/google", h.UpsertGoogleUser)
	r.Patch("/users/{id}", h.UpdateUserImages)
	r.Put("/users/verify", h.VerifyUser)

	// Catalog
	r.Get("/packages", h.ListPackages)
	r.Get("/packages/{id}", h.GetPackage)

	// Purchases readable without a session
	r.Get("/myPackage/check", h.CheckPurchase)
	r.Get("/myPackage/{id}", h.GetPurchase)

	// Reviews
	r.Get("/reviews", h.ListReviews)
	r.Get("/reviews/average/{packageId}", h.AverageRating)
	r.Post("/reviews", h.CreateReview)
	r.Put("/reviews/{id}", h.UpdateReview)
	r.Delete("/reviews/{id}", h.DeleteReview)

	// Experiences
	r.Get("/experiences", h.ListExperiences)
	r.Get("/experiences/{id}", h.GetExperience)

	r.Group(func(r chi.Router) {
		r.Use(requireSession)

		r.Get("/users", h.ListUsers)
		r.Patch("/users/role/{id}", h.SetUserRole)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminIf(adminOnlyCatalog, h.Users))
			r.Post("/packages", h.CreatePackage)
			r.Patch("/packages/{id}", h.UpdatePackage)
			r.Delete("/packages/{id}", h.DeletePackage)
		})

		r.Get("/myPackage", h.ListPurchases)
		r.Get("/myPackage/count/{email}", h.CountPurchases)
		r.Post("/myPackage", h.CreatePurchase)
		r.Delete("/myPackage/{id}", h.DeletePurchase)
		r.Get("/myPackages", h.ListAllPurchases)

		r.Get("/bookmark", h.ListBookmarks)
		r.Get("/bookmark/check", h.CheckBookmark)
		r.Post("/bookmark", h.CreateBookmark)
		r.Delete("/bookmark/{id}", h.DeleteBookmark)
		r.Get("/bookmarks", h.ListAllBookmarks)

		r.Get("/reviews/admin", h.ListAllReviews)

		r.Get("/payments", h.ListPayments)
		r.Post("/create-payment-intent", h.CreatePaymentIntent)
		r.Post("/payments", h.RecordPayment)
		r.Patch("/payments/{id}", h.UpdatePaymentStatus)

		r.Post("/experiences", h.CreateExperience)
		r.Patch("/experiences/{id}", h.UpdateExperience)
		r.Delete("/experiences/{id}", h.DeleteExperience)

		r.Post("/upload", h.UploadFile)

		r.Group(func(r chi.Router) {
			r.Use(requireAdmin)
			r.Get("/payments/stats", h.PaymentStats)
			r.Get("/ws/payments", h.PaymentFeed)
		})
	})
}
