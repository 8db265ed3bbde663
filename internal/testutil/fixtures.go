package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/worlddist/ordering-backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test buyers with a builder pattern
type UserBuilder struct {
	email       string
	password    string
	companyName string
	country     string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		email:       fmt.Sprintf("buyer_%s@example.com", uuid.New().String()[:8]),
		password:    "testpassword123",
		companyName: "Test Trading GmbH",
		country:     "Germany",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithCompanyName sets the company name
func (b *UserBuilder) WithCompanyName(name string) *UserBuilder {
	b.companyName = name
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		CompanyName:  b.companyName,
		Country:      b.country,
		Region:       "EU",
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndLogin registers the user through the API and returns the user
// together with the session cookie set by the server.
func (b *UserBuilder) BuildAndLogin(t *testing.T, ts *TestServer) (*domain.User, *http.Cookie) {
	t.Helper()

	reqBody := map[string]string{
		"email":       b.email,
		"password":    b.password,
		"companyName": b.companyName,
		"country":     b.country,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var registered struct {
		User *domain.User `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&registered); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			session = c
		}
	}
	if session == nil {
		t.Fatal("register response did not set a session cookie")
	}

	return registered.User, session
}

// ProductBuilder creates catalog entries with a builder pattern
type ProductBuilder struct {
	name      string
	category  string
	basePrice decimal.Decimal
	unit      string
	stock     int
}

// NewProductBuilder creates a new ProductBuilder with default values
func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		name:      fmt.Sprintf("Test Product %s", uuid.New().String()[:8]),
		category:  "Food Commodities",
		basePrice: decimal.RequireFromString("10.00"),
		unit:      "kg",
		stock:     1000,
	}
}

// WithName sets the product name
func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.name = name
	return b
}

// WithBasePrice sets the base price
func (b *ProductBuilder) WithBasePrice(price string) *ProductBuilder {
	b.basePrice = decimal.RequireFromString(price)
	return b
}

// Build creates the product in the database
func (b *ProductBuilder) Build(t *testing.T, db *gorm.DB) *domain.Product {
	t.Helper()

	product := &domain.Product{
		Name:      b.name,
		Category:  b.category,
		BasePrice: b.basePrice,
		Unit:      b.unit,
		Stock:     b.stock,
	}

	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	return product
}
