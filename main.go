package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"yu-marketplace-backend/controller"
	"yu-marketplace-backend/dao"
	"yu-marketplace-backend/middleware"
	"yu-marketplace-backend/pkg/auth"
	"yu-marketplace-backend/pkg/config"
	"yu-marketplace-backend/pkg/upload"
	"yu-marketplace-backend/usecase"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	cfg := config.Load()

	// 1. DB Connection
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}
	log.Println("Connected to database")

	// 2. Dependency Injection
	sessions := auth.NewManager(cfg.JWTSecret, cfg.SessionTTL)
	uploads, err := upload.NewStore(cfg.UploadDir)
	if err != nil {
		log.Fatal("Failed to prepare upload dir:", err)
	}

	userRepo := dao.NewUserRepository(db)
	itemRepo := dao.NewItemRepository(db)
	msgRepo := dao.NewMessageRepository(db)

	userUsecase := usecase.NewUserUsecase(userRepo)
	itemUsecase := usecase.NewItemUsecase(itemRepo, cfg.PageSize)
	messageUsecase := usecase.NewMessageUsecase(msgRepo, itemRepo)

	userController := controller.NewUserController(userUsecase, sessions)
	itemController := controller.NewItemController(itemUsecase, messageUsecase, uploads)
	messageController := controller.NewMessageController(messageUsecase)

	authn := middleware.NewAuthenticator(sessions, userRepo)
	limiter := middleware.NewLimiterStore(10, 5, 5*time.Minute)

	// 3. Routing
	mux := http.NewServeMux()
	mux.HandleFunc("/register", limiter.Limit(userController.Register))
	mux.HandleFunc("/login", limiter.Limit(userController.Login))
	mux.HandleFunc("/logout", userController.Logout)
	mux.HandleFunc("/users", userController.Users)
	mux.HandleFunc("/items", authn.RequireUser(itemController.HandleItems))
	mux.HandleFunc("/items/", authn.RequireUser(itemController.HandleItemDetail))
	mux.HandleFunc("/inbox", authn.RequireUser(messageController.Inbox))
	mux.HandleFunc("/messages/", authn.RequireUser(messageController.Send))
	mux.HandleFunc("/dashboard", authn.RequireUser(messageController.Dashboard))
	mux.Handle("/images/", http.StripPrefix("/images/", http.FileServer(http.Dir(cfg.UploadDir))))

	// 4. Start Server
	log.Printf("Server starting on port %s...", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, middleware.CORS(mux)); err != nil {
		log.Fatal(err)
	}
}
