package httpserver

import (
	"net/http"
	"time"

	"lunch-ledger-go/internal/transport/httpserver/handler"
	"lunch-ledger-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handlers *handler.Handlers) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.NewCORS([]string{"http://localhost:3000"}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Get("/members", handlers.ListMembers)
		r.Post("/members", handlers.CreateMember)
		r.Get("/members/{id}", handlers.GetMember)
		r.Put("/members/{id}", handlers.UpdateMember)
		r.Delete("/members/{id}", handlers.DeleteMember)

		r.Get("/lunch-entries", handlers.ListEntries)
		r.Post("/lunch-entries", handlers.CreateEntry)
		r.Get("/lunch-entries/{id}", handlers.GetEntry)
		r.Put("/lunch-entries/{id}", handlers.UpdateEntry)
		r.Delete("/lunch-entries/{id}", handlers.DeleteEntry)

		r.Get("/payments", handlers.ListPayments)
		r.Post("/payments", handlers.CreatePayment)
		r.Get("/payments/check-entry", handlers.CheckEntryPaid)

		r.Get("/weekly-debt", handlers.WeeklyDebt)
		r.Post("/weekly-debt/settle", handlers.SettleDebt)

		r.Get("/member-report", handlers.MemberReport)
		r.Get("/member-report/export", handlers.ExportMemberReport)
	})

	return r
}
