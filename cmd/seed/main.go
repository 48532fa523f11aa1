// File: cmd/seed/main.go
// 建立 100 筆測試使用者資料，覆蓋既有內容
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"gemini-users/internal/database"
	"gemini-users/internal/model"
	"gemini-users/internal/store"

	"github.com/joho/godotenv"
)

const seedCount = 100

var firstNames = []string{
	"Alice", "Bob", "Carol", "David", "Emma", "Frank", "Grace", "Henry",
	"Iris", "Jack", "Karen", "Leo", "Mia", "Noah", "Olivia", "Peter",
	"Quinn", "Ruby", "Sam", "Tina",
}

var lastNames = []string{
	"Anderson", "Brown", "Chen", "Davis", "Evans", "Fisher", "Garcia",
	"Huang", "Ito", "Johnson", "Kim", "Lee", "Miller", "Nguyen", "Ortiz",
	"Park", "Quintero", "Robinson", "Smith", "Tanaka",
}

func main() {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("環境變數 DATABASE_URL 未設定")
	}

	if err := database.RunMigrations(dbURL); err != nil {
		log.Fatalf("Migration 執行失敗: %v", err)
	}

	ctx := context.Background()
	db, err := database.NewPgxPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	// 先清空既有資料
	if _, err := db.Exec(ctx, `DELETE FROM users`); err != nil {
		log.Fatalf("清空 users 失敗: %v", err)
	}

	for i := 0; i < seedCount; i++ {
		first := firstNames[rand.Intn(len(firstNames))]
		last := lastNames[rand.Intn(len(lastNames))]
		name := first + " " + last
		// 加上流水號確保 email 唯一
		email := fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1)

		if _, err := store.CreateUser(ctx, db, &model.User{Name: name, Email: email}); err != nil {
			log.Fatalf("建立使用者失敗: %v", err)
		}
	}

	log.Printf("已建立 %d 筆使用者資料", seedCount)
}
