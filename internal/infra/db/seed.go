package db

import (
	"bookstore/internal/domain/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed は初期データを投入する。既にユーザーがいれば何もしない。
// 価格は最小通貨単位（元の表示価格×100）。
func Seed(gormDB *gorm.DB) error {
	var userCount int64
	if err := gormDB.Model(&model.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	userHash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []model.User{
		{
			Username:     "admin",
			Email:        "admin@bookstore.com",
			PasswordHash: string(adminHash),
			Role:         model.RoleAdmin,
			FullName:     "Store Admin",
		},
		{
			Username:     "john_doe",
			Email:        "john@example.com",
			PasswordHash: string(userHash),
			Role:         model.RoleUser,
			FullName:     "John Doe",
			Phone:        "555-0101",
			Address:      "123 Main Street",
		},
	}
	if err := gormDB.Create(&users).Error; err != nil {
		return err
	}

	books := []model.Book{
		{
			Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: "9780743273565",
			Price: 65000, StockQuantity: 25, Category: "Fiction",
			Description: "A classic American novel set in the Jazz Age.",
			Publisher:   "Scribner", PublicationYear: 1925, Pages: 180, Language: "English", Rating: 4.2,
		},
		{
			Title: "To Kill a Mockingbird", Author: "Harper Lee", ISBN: "9780061120084",
			Price: 70000, StockQuantity: 30, Category: "Fiction",
			Description: "A story of racial injustice in the American South.",
			Publisher:   "HarperCollins", PublicationYear: 1960, Pages: 324, Language: "English", Rating: 4.5,
		},
		{
			Title: "1984", Author: "George Orwell", ISBN: "9780451524935",
			Price: 55000, StockQuantity: 20, Category: "Fiction",
			Description: "A dystopian vision of a totalitarian future.",
			Publisher:   "Signet Classic", PublicationYear: 1949, Pages: 328, Language: "English", Rating: 4.4,
		},
		{
			Title: "Python Crash Course", Author: "Eric Matthes", ISBN: "9781593279288",
			Price: 120000, StockQuantity: 15, Category: "Technology",
			Description: "A hands-on, project-based introduction to programming.",
			Publisher:   "No Starch Press", PublicationYear: 2019, Pages: 544, Language: "English", Rating: 4.6,
		},
		{
			Title: "Clean Code", Author: "Robert C. Martin", ISBN: "9780132350884",
			Price: 150000, StockQuantity: 12, Category: "Technology",
			Description: "A handbook of agile software craftsmanship.",
			Publisher:   "Prentice Hall", PublicationYear: 2008, Pages: 464, Language: "English", Rating: 4.3,
		},
		{
			Title: "Sapiens", Author: "Yuval Noah Harari", ISBN: "9780062316097",
			Price: 90000, StockQuantity: 18, Category: "History",
			Description: "A brief history of humankind.",
			Publisher:   "Harper", PublicationYear: 2015, Pages: 443, Language: "English", Rating: 4.4,
		},
		{
			Title: "Atomic Habits", Author: "James Clear", ISBN: "9780735211292",
			Price: 80000, StockQuantity: 22, Category: "Self-Help",
			Description: "An easy and proven way to build good habits.",
			Publisher:   "Avery", PublicationYear: 2018, Pages: 320, Language: "English", Rating: 4.7,
		},
		{
			Title: "The Alchemist", Author: "Paulo Coelho", ISBN: "9780062315007",
			Price: 60000, StockQuantity: 28, Category: "Fiction",
			Description: "A fable about following your dream.",
			Publisher:   "HarperOne", PublicationYear: 1993, Pages: 208, Language: "English", Rating: 4.1,
		},
	}
	return gormDB.Create(&books).Error
}
