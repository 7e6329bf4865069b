package model

import (
	"time"
)

const (
	PropertyStatusActive   = "active"
	PropertyStatusInactive = "inactive"
)

type Location struct {
	Address  string `json:"address" bson:"address" validate:"required,min=3,max=200"`
	City     string `json:"city" bson:"city" validate:"required,min=2,max=100"`
	State    string `json:"state" bson:"state" validate:"required,min=2,max=100"`
	Postcode string `json:"postcode" bson:"postcode" validate:"required,len=5,numeric"`
}

// Property is a published homestay listing. PricePerNightSen is in sen
// (RM cents); display formatting is a client concern.
type Property struct {
	ID               string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	OwnerID          string    `json:"owner_id" bson:"owner_id" validate:"required"`
	Title            string    `json:"title" bson:"title" validate:"required,min=2,max=120"`
	Description      string    `json:"description" bson:"description" validate:"required,min=10,max=5000"`
	Location         Location  `json:"location" bson:"location"`
	PricePerNightSen int64     `json:"price_per_night_sen" bson:"price_per_night_sen" validate:"required,min=1"`
	MaxGuests        int       `json:"max_guests" bson:"max_guests" validate:"required,min=1,max=50"`
	Bedrooms         int       `json:"bedrooms" bson:"bedrooms" validate:"omitempty,min=0,max=50"`
	Bathrooms        int       `json:"bathrooms" bson:"bathrooms" validate:"omitempty,min=0,max=50"`
	Amenities        []string  `json:"amenities" bson:"amenities" validate:"required,min=1,dive,min=2,max=50"`
	WhatsAppNumber   string    `json:"whatsapp_number" bson:"whatsapp_number" validate:"required,my_phone"`
	Images           []string  `json:"images,omitempty" bson:"images,omitempty" validate:"omitempty,dive,url"`
	Status           string    `json:"status" bson:"status" validate:"required,oneof=active inactive"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

type PropertyUpdate struct {
	Title            string    `json:"title,omitempty" validate:"omitempty,min=2,max=120"`
	Description      string    `json:"description,omitempty" validate:"omitempty,min=10,max=5000"`
	Location         *Location `json:"location,omitempty" validate:"omitempty"`
	PricePerNightSen *int64    `json:"price_per_night_sen,omitempty" validate:"omitempty,min=1"`
	MaxGuests        *int      `json:"max_guests,omitempty" validate:"omitempty,min=1,max=50"`
	Bedrooms         *int      `json:"bedrooms,omitempty" validate:"omitempty,min=0,max=50"`
	Bathrooms        *int      `json:"bathrooms,omitempty" validate:"omitempty,min=0,max=50"`
	Amenities        []string  `json:"amenities,omitempty" validate:"omitempty,min=1,dive,min=2,max=50"`
	WhatsAppNumber   string    `json:"whatsapp_number,omitempty" validate:"omitempty,my_phone"`
	Images           []string  `json:"images,omitempty" validate:"omitempty,dive,url"`
	Status           string    `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// PropertyDraft is the in-progress multi-step listing form. Steps are
// validated incrementally; the full Property validation runs on submit.
type PropertyDraft struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Location         Location `json:"location"`
	PricePerNightSen int64    `json:"price_per_night_sen"`
	MaxGuests        int      `json:"max_guests"`
	WhatsAppNumber   string   `json:"whatsapp_number"`
	Amenities        []string `json:"amenities"`
}

// SearchFilter mirrors the browse-page filters: free-text location match,
// nightly price range in sen, and minimum guest capacity.
type SearchFilter struct {
	Location    string `json:"location"`
	MinPriceSen int64  `json:"min_price_sen"`
	MaxPriceSen int64  `json:"max_price_sen"`
	MinGuests   int    `json:"min_guests"`
}
