package main

import (
	"database/sql"
	"log"

	"yu-marketplace-backend/pkg/config"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	cfg := config.Load()

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id CHAR(26) PRIMARY KEY COMMENT 'ULID',
			username VARCHAR(255) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id CHAR(26) PRIMARY KEY COMMENT 'ULID',
			name VARCHAR(255) NOT NULL,
			price INT NOT NULL,
			category VARCHAR(255),
			image_url VARCHAR(512),
			seller_id CHAR(26) NOT NULL,
			location VARCHAR(255),
			description TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (seller_id) REFERENCES users(id)
		)`,
		// No foreign key on item_id: messages outlive their item on
		// purpose, the inbox drops them from view instead.
		`CREATE TABLE IF NOT EXISTS messages (
			id CHAR(26) PRIMARY KEY COMMENT 'ULID',
			item_id CHAR(26) NOT NULL,
			sender_id CHAR(26) NOT NULL,
			receiver_id CHAR(26) NOT NULL,
			content TEXT NOT NULL,
			is_read BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_messages_item (item_id),
			INDEX idx_messages_receiver (receiver_id, is_read)
		)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			log.Printf("Error executing query: %s\nError: %v", q, err)
			continue
		}
		log.Println("Executed successfully:", q[:40], "...")
	}
	log.Println("Migration completed.")
}
