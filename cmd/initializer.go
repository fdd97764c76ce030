package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"arendaBack/internal/config"
	"arendaBack/internal/geo"
	"arendaBack/internal/handlers"
	"arendaBack/internal/repositories"
	services "arendaBack/internal/services"
	"arendaBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB

	tokenManager *utils.Manager
	userRepo     *repositories.UserRepository
	wsManager    *WebSocketManager

	userHandler        *handlers.UserHandler
	listingHandler     *handlers.ListingHandler
	bookingHandler     *handlers.BookingHandler
	chatHandler        *handlers.ChatHandler
	messageHandler     *handlers.MessageHandler
	favoriteHandler    *handlers.FavoriteHandler
	savedSearchHandler *handlers.SavedSearchHandler
}

func initializeApp(db *sql.DB, rdb *redis.Client, fcmClient *messaging.Client, cfg config.Config, errorLog, infoLog *log.Logger) (*application, error) {
	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		return nil, err
	}
	storage, err := utils.NewStorage(cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.Endpoint)
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepo := &repositories.UserRepository{Db: db}
	listingRepo := &repositories.ListingRepository{Db: db}
	bookingRepo := &repositories.BookingRepository{Db: db}
	chatRepo := &repositories.ChatRepository{Db: db}
	messageRepo := &repositories.MessageRepository{Db: db}
	favoriteRepo := &repositories.FavoriteRepository{Db: db}
	savedSearchRepo := &repositories.SavedSearchRepository{Db: db}

	geocoder := geo.NewDGISClient(&http.Client{Timeout: 10 * time.Second}, cfg.Geocoder.APIKey, cfg.Geocoder.RegionID)
	locator := geo.NewListingLocator(rdb)

	// Services
	pushService := &services.PushService{Client: fcmClient, UserRepo: userRepo, ErrorLog: errorLog}
	userService := &services.UserService{UserRepo: userRepo, TokenManager: tokenManager}
	listingService := &services.ListingService{ListingRepo: listingRepo, Geocoder: geocoder, Locator: locator, ErrorLog: errorLog}
	bookingService := &services.BookingService{BookingRepo: bookingRepo, ListingRepo: listingRepo, Push: pushService}
	chatService := &services.ChatService{ChatRepo: chatRepo, ListingRepo: listingRepo}
	messageService := &services.MessageService{MessageRepo: messageRepo, ChatRepo: chatRepo, Push: pushService}
	favoriteService := &services.FavoriteService{FavoriteRepo: favoriteRepo, ListingRepo: listingRepo}
	savedSearchService := &services.SavedSearchService{SavedSearchRepo: savedSearchRepo}

	return &application{
		errorLog:     errorLog,
		infoLog:      infoLog,
		db:           db,
		tokenManager: tokenManager,
		userRepo:     userRepo,

		userHandler:        &handlers.UserHandler{UserService: userService},
		listingHandler:     &handlers.ListingHandler{ListingService: listingService, Storage: storage},
		bookingHandler:     &handlers.BookingHandler{BookingService: bookingService},
		chatHandler:        &handlers.ChatHandler{ChatService: chatService},
		messageHandler:     &handlers.MessageHandler{MessageService: messageService},
		favoriteHandler:    &handlers.FavoriteHandler{FavoriteService: favoriteService},
		savedSearchHandler: &handlers.SavedSearchHandler{SavedSearchService: savedSearchService},
	}, nil
}
