package main

import (
	"fmt"
	"log"
	"time"

	"roomly/internal/hotels"
	"roomly/internal/packages"
	"roomly/internal/promotions"
	"roomly/internal/shared/config"
	"roomly/internal/shared/database"
	"roomly/internal/users"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting Roomly database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Done. Log in as admin@roomly.test / admin1234")
}

func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"reviews", "bookings", "package_items", "packages",
		"hotel_services", "promotions", "rooms", "room_types",
		"hotels", "users",
	}
	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to clean %s: %w", table, err)
		}
	}
	return nil
}

func (s *Seeder) SeedAll() error {
	if err := s.seedUsers(); err != nil {
		return err
	}
	roomTypeIDs, err := s.seedHotels()
	if err != nil {
		return err
	}
	if err := s.seedPromotions(); err != nil {
		return err
	}
	return s.seedPackages(roomTypeIDs)
}

func (s *Seeder) seedUsers() error {
	accounts := []struct {
		firstName string
		lastName  string
		email     string
		phone     string
		role      users.Role
	}{
		{"Admin", "User", "admin@roomly.test", "+60123450001", users.RoleAdmin},
		{"Front", "Desk", "frontdesk@roomly.test", "+60123450002", users.RoleStaff},
		{"Aina", "Rahman", "aina@example.com", "+60123450003", users.RoleUser},
		{"Wei", "Tan", "wei@example.com", "+60123450004", users.RoleUser},
	}

	for _, account := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := users.User{
			FirstName: account.firstName,
			LastName:  account.lastName,
			Email:     account.email,
			Phone:     account.phone,
			Password:  string(hash),
			Role:      account.role,
		}
		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user %s: %w", account.email, err)
		}
	}

	fmt.Printf("  seeded %d users\n", len(accounts))
	return nil
}

// seedHotels creates two hotels with room types and rooms, returning the
// room type ids for package wiring.
func (s *Seeder) seedHotels() ([]uint, error) {
	hotel := hotels.Hotel{
		Name:    "Roomly Central KL",
		City:    "Kuala Lumpur",
		Address: "12 Jalan Sultan Ismail",
	}
	if err := s.db.PostgreSQL.Create(&hotel).Error; err != nil {
		return nil, err
	}

	beach := hotels.Hotel{
		Name:    "Roomly Beachside Penang",
		City:    "George Town",
		Address: "8 Gurney Drive",
	}
	if err := s.db.PostgreSQL.Create(&beach).Error; err != nil {
		return nil, err
	}

	roomTypes := []hotels.RoomType{
		{HotelID: hotel.ID, Name: "Standard Queen", BasePrice: 79.99, Capacity: 2},
		{HotelID: hotel.ID, Name: "Deluxe Twin", BasePrice: 109.50, Capacity: 3},
		{HotelID: beach.ID, Name: "Sea View Double", BasePrice: 149.00, Capacity: 2},
	}
	ids := make([]uint, 0, len(roomTypes))
	for i := range roomTypes {
		if err := s.db.PostgreSQL.Create(&roomTypes[i]).Error; err != nil {
			return nil, err
		}
		ids = append(ids, roomTypes[i].ID)

		for n := 1; n <= 5; n++ {
			room := hotels.Room{
				RoomTypeID: roomTypes[i].ID,
				RoomNumber: fmt.Sprintf("%d0%d", i+1, n),
				Floor:      i + 1,
				Status:     hotels.RoomStatusAvailable,
			}
			if err := s.db.PostgreSQL.Create(&room).Error; err != nil {
				return nil, err
			}
		}
	}

	fmt.Printf("  seeded 2 hotels, %d room types, %d rooms\n", len(roomTypes), len(roomTypes)*5)
	return ids, nil
}

func (s *Seeder) seedPromotions() error {
	now := time.Now().UTC()
	minNights := 2
	minAmount := 150.0
	maxUses := 100

	promos := []promotions.Promotion{
		{
			Code:          "WELCOME10",
			Description:   "10% off your first stay",
			DiscountType:  promotions.DiscountPercentage,
			DiscountValue: 10,
			StartDate:     now.AddDate(0, -1, 0),
			EndDate:       now.AddDate(0, 2, 0),
			LimitPerPhone: true, LimitPerCard: true, LimitPerAccount: true, LimitPerDevice: true,
			MaxUsesPerLimit: 1,
			IsActive:        true,
		},
		{
			Code:          "LONGSTAY25",
			Description:   "RM 25 off stays of two nights or more",
			DiscountType:  promotions.DiscountFixedAmount,
			DiscountValue: 25,
			StartDate:     now.AddDate(0, -1, 0),
			EndDate:       now.AddDate(0, 1, 0),
			MinimumNights: &minNights,
			MinimumAmount: &minAmount,
			MaxTotalUses:  &maxUses,
			IsActive:      true,
		},
	}

	for i := range promos {
		if err := s.db.PostgreSQL.Create(&promos[i]).Error; err != nil {
			return fmt.Errorf("failed to seed promotion %s: %w", promos[i].Code, err)
		}
	}

	fmt.Printf("  seeded %d promotions\n", len(promos))
	return nil
}

func (s *Seeder) seedPackages(roomTypeIDs []uint) error {
	breakfast := packages.HotelService{
		Name:        "Breakfast Buffet",
		Description: "Daily breakfast buffet for two",
		Price:       35,
	}
	if err := s.db.PostgreSQL.Create(&breakfast).Error; err != nil {
		return err
	}

	transfer := packages.HotelService{
		Name:        "Airport Transfer",
		Description: "One-way transfer from KLIA",
		Price:       90,
	}
	if err := s.db.PostgreSQL.Create(&transfer).Error; err != nil {
		return err
	}

	weekend := packages.Package{
		Name:        "Weekend Escape",
		Description: "Two nights in a Standard Queen with breakfast",
		Price:       199,
		Nights:      2,
		IsActive:    true,
		Items: []packages.PackageItem{
			packages.RoomItem(roomTypeIDs[0], 2),
			packages.ServiceItem(breakfast.ID, 2),
		},
	}
	if err := s.db.PostgreSQL.Create(&weekend).Error; err != nil {
		return fmt.Errorf("failed to seed package: %w", err)
	}

	fmt.Println("  seeded 2 services, 1 package")
	return nil
}
