package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// UserType представляет правовой тип пользователя
type UserType string

const (
	UserTypeNatural UserType = "natural"
	UserTypeJuridic UserType = "juridic"
)

// Имена групп пользователей
const (
	GroupAdmin    = "ADMIN"
	GroupCustomer = "CUSTOMER"
	GroupRider    = "RIDER"
)

// Group представляет группу пользователей
type Group struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:50;unique;not null" json:"name"`
}

// TableName возвращает имя таблицы для модели Group
func (Group) TableName() string {
	return "groups"
}

type User struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username      string    `gorm:"size:50;unique;not null;index" json:"username"`
	FirstName     string    `gorm:"column:first_name;size:50" json:"first_name"`
	LastName      string    `gorm:"column:last_name;size:50" json:"last_name"`
	Email         string    `gorm:"column:email;unique;not null;size:100;index" json:"email"`
	Password      string    `gorm:"column:password;not null;size:100" json:"-"`
	CountryUserID string    `gorm:"column:country_user_id;size:10;unique" json:"country_user_id"` // CI в Венесуэле, DNI в Испании
	RIF           *string   `gorm:"column:rif;size:10;unique" json:"rif,omitempty"`
	PhoneNumber   string    `gorm:"size:20" json:"phone_number"`
	Type          UserType  `gorm:"type:varchar(10);not null;default:'natural'" json:"type"`
	ForgotToken   *string   `gorm:"column:forgot_password_token;size:100;unique" json:"-"`
	CreatedAt     time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;default:CURRENT_TIMESTAMP" json:"updated_at"`
	Groups        []Group   `gorm:"many2many:user_groups" json:"groups,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate хук для валидации перед созданием
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if len(u.Username) < 2 || len(u.Username) > 50 {
		return errors.New("username must be between 2 and 50 characters")
	}
	if len(u.Email) < 3 || len(u.Email) > 100 {
		return errors.New("email must be between 3 and 100 characters")
	}
	if u.Type != UserTypeNatural && u.Type != UserTypeJuridic {
		return errors.New("user type must be natural or juridic")
	}
	return nil
}

// InGroup проверяет членство в группе по загруженным связям
func (u *User) InGroup(name string) bool {
	for _, g := range u.Groups {
		if g.Name == name {
			return true
		}
	}
	return false
}

// IsCustomer проверяет, что пользователь состоит в группе CUSTOMER
func (u *User) IsCustomer() bool {
	return u.InGroup(GroupCustomer)
}

// Address представляет адрес пользователя с мягким удалением
type Address struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:50;not null" json:"name"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	UserID      uint      `gorm:"not null" json:"user"`
	CreatedAt   time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"created_at"`
	IsDeleted   bool      `gorm:"not null;default:false" json:"is_deleted"`
}

// TableName возвращает имя таблицы для модели Address
func (Address) TableName() string {
	return "addresses"
}

// UserContact представляет контактное лицо пользователя
type UserContact struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"size:50;not null" json:"name"`
	PhoneNumber  string `gorm:"size:50" json:"phone_number"`
	Relationship string `gorm:"size:50" json:"relationship"`
	Address      string `gorm:"size:200" json:"address"`
	Email        string `gorm:"size:50" json:"email"`
}

// TableName возвращает имя таблицы для модели UserContact
func (UserContact) TableName() string {
	return "user_contacts"
}

// Company представляет компанию (работодателя или компанию поручителя)
type Company struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"size:50;not null" json:"name"`
	WebPage   string `json:"web_page"`
	Instagram string `gorm:"size:50" json:"instagram"`
	Facebook  string `gorm:"size:50" json:"facebook"`
	Address   string `gorm:"size:200" json:"address"`
}

// TableName возвращает имя таблицы для модели Company
func (Company) TableName() string {
	return "companies"
}
