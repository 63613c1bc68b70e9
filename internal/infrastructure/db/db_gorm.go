package db

import (
	"fmt"
	"log"
	"os"

	gmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	eventstudyadapters "seasonality_backend/internal/feature/eventstudy/adapters"
	symbolsentity "seasonality_backend/internal/feature/symbols/domain/entity"
)

func OpenDB() *gorm.DB {
	user := os.Getenv("DB_USER")
	pass := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")

	instance := os.Getenv("INSTANCE_CONNECTION_NAME")

	var dsn string
	if instance != "" {
		dsn = fmt.Sprintf("%s:%s@unix(/cloudsql/%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			user, pass, instance, name)
	} else {
		host := os.Getenv("DB_HOST")
		port := os.Getenv("DB_PORT")
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=Local",
			user, pass, host, port, name)
	}

	db, err := gorm.Open(gmysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	// マイグレーション（取引セッション、イベント発生、銘柄）
	if err := db.AutoMigrate(
		&eventstudyadapters.TradingSessionModel{},
		&eventstudyadapters.EventOccurrenceModel{},
		&symbolsentity.Symbol{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
