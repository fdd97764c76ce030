package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) jwtMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.jwtMiddleware())

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/device_token", authMiddleware.ThenFunc(app.userHandler.SaveDeviceToken))

	// Listings
	mux.Post("/listing", authMiddleware.ThenFunc(app.listingHandler.CreateListing))
	mux.Post("/listing/filtered", standardMiddleware.ThenFunc(app.listingHandler.GetFilteredListings))
	mux.Get("/listing/user/:user_id", authMiddleware.ThenFunc(app.listingHandler.GetListingsByUserID))
	mux.Post("/listing/:id/publish", authMiddleware.ThenFunc(app.listingHandler.PublishListing))
	mux.Post("/listing/:id/images", authMiddleware.ThenFunc(app.listingHandler.UploadImages))
	mux.Get("/listing/:id/availability", standardMiddleware.ThenFunc(app.bookingHandler.GetAvailability))
	mux.Get("/listing/:id", standardMiddleware.ThenFunc(app.listingHandler.GetListingByID))
	mux.Put("/listing/:id", authMiddleware.ThenFunc(app.listingHandler.UpdateListing))
	mux.Del("/listing/:id", authMiddleware.ThenFunc(app.listingHandler.DeleteListing))

	// Bookings
	mux.Post("/booking", authMiddleware.ThenFunc(app.bookingHandler.CreateBooking))
	mux.Get("/booking/mine", authMiddleware.ThenFunc(app.bookingHandler.GetMyBookings))
	mux.Post("/booking/:id/payment", authMiddleware.ThenFunc(app.bookingHandler.UpdatePayment))
	mux.Patch("/booking/:id", authMiddleware.ThenFunc(app.bookingHandler.DecideBooking))

	// Chat
	mux.Get("/ws", authMiddleware.ThenFunc(app.WebSocketHandler))

	mux.Post("/chats/open", authMiddleware.ThenFunc(app.chatHandler.OpenChat))
	mux.Get("/chats/:id/messages", authMiddleware.ThenFunc(app.messageHandler.GetMessages))
	mux.Post("/chats/:id/messages", authMiddleware.ThenFunc(app.messageHandler.PostMessage))
	mux.Post("/chats/:id/read", authMiddleware.ThenFunc(app.messageHandler.MarkRead))
	mux.Get("/chats/:id", authMiddleware.ThenFunc(app.chatHandler.GetChatByID))
	mux.Get("/chats", authMiddleware.ThenFunc(app.chatHandler.GetChats))

	// Favorites
	mux.Post("/favorites/toggle", authMiddleware.ThenFunc(app.favoriteHandler.ToggleFavorite))
	mux.Get("/favorites", authMiddleware.ThenFunc(app.favoriteHandler.GetFavorites))

	// Saved searches
	mux.Post("/saved_searches", authMiddleware.ThenFunc(app.savedSearchHandler.CreateSavedSearch))
	mux.Get("/saved_searches", authMiddleware.ThenFunc(app.savedSearchHandler.GetSavedSearches))
	mux.Del("/saved_searches/:id", authMiddleware.ThenFunc(app.savedSearchHandler.DeleteSavedSearch))

	return standardMiddleware.Then(mux)
}
