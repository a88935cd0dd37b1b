package sandbox

import (
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"crmctl/internal/crm"
)

// User is the sandbox account row. Passwords are bcrypt hashes and never
// serialised.
type User struct {
	ID       int64  `json:"id" gorm:"primaryKey"`
	FullName string `json:"fullName"`
	Email    string `json:"email" gorm:"uniqueIndex"`
	Password string `json:"-"`
	Role     string `json:"role"`
}

// purchaseRow adds the primary key the wire shape deliberately lacks.
type purchaseRow struct {
	ID     int64 `gorm:"primaryKey"`
	Vendor string
	Amount float64
}

// Store is the sandbox's persistence layer. The record collections reuse
// the wire types directly — the sandbox exists to mirror the contract, not
// to model a richer schema.
type Store struct {
	db *gorm.DB
}

// OpenStore opens sqlite (default, ":memory:" friendly for tests) or
// postgres, mirroring the driver-switch configuration style used elsewhere
// in this codebase's lineage.
func OpenStore(driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("sandbox: unsupported db driver %q (sqlite, postgres)", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("sandbox: open database: %w", err)
	}

	if err := db.AutoMigrate(
		&User{},
		&crm.Customer{},
		&crm.Lead{},
		&crm.Sale{},
		&crm.Task{},
		&purchaseRow{},
	); err != nil {
		return nil, fmt.Errorf("sandbox: migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// ------------------- Users -------------------

func (s *Store) CreateUser(u *User) error {
	if err := s.db.Create(u).Error; err != nil {
		return fmt.Errorf("sandbox: create user: %w", err)
	}
	return nil
}

func (s *Store) UserByEmail(email string) (*User, bool) {
	var u User
	err := s.db.Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false
	}
	if err != nil {
		return nil, false
	}
	return &u, true
}

// ------------------- Generic record access -------------------

// listAll loads every row of the collection into out (a *[]T).
func (s *Store) listAll(out interface{}) error {
	return s.db.Order("id").Find(out).Error
}

func (s *Store) create(record interface{}) error {
	return s.db.Create(record).Error
}

// save replaces the whole row at id with record.
func (s *Store) save(record interface{}) error {
	return s.db.Save(record).Error
}

func (s *Store) byID(id int64, out interface{}) bool {
	err := s.db.First(out, id).Error
	return err == nil
}

func (s *Store) deleteByID(model interface{}, id int64) bool {
	res := s.db.Delete(model, id)
	return res.Error == nil && res.RowsAffected > 0
}

// ------------------- Aggregates -------------------

// TotalRevenue sums all deal amounts.
func (s *Store) TotalRevenue() float64 {
	var total float64
	s.db.Model(&crm.Sale{}).Select("COALESCE(SUM(amount), 0)").Scan(&total)
	return total
}

// TotalSales counts deals.
func (s *Store) TotalSales() int64 {
	var n int64
	s.db.Model(&crm.Sale{}).Count(&n)
	return n
}

// TotalPurchases sums all purchase amounts.
func (s *Store) TotalPurchases() float64 {
	var total float64
	s.db.Model(&purchaseRow{}).Select("COALESCE(SUM(amount), 0)").Scan(&total)
	return total
}
