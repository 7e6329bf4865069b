package testutil

import (
	"time"

	"rumahstay/pkg/model"
)

type PropertyBuilder struct {
	property model.Property
}

func NewPropertyBuilder() *PropertyBuilder {
	return &PropertyBuilder{
		property: model.Property{
			OwnerID:          "owner-1",
			Title:            "Seaview Homestay Penang",
			Description:      "Airy two-bedroom homestay five minutes from Batu Ferringhi beach.",
			Location:         model.Location{Address: "12 Jalan Tanjung Bungah", City: "George Town", State: "Pulau Pinang", Postcode: "11200"},
			PricePerNightSen: 10000,
			MaxGuests:        4,
			Bedrooms:         2,
			Bathrooms:        1,
			Amenities:        []string{"wifi", "air conditioning"},
			WhatsAppNumber:   "+60123456789",
			Status:           model.PropertyStatusActive,
			CreatedAt:        time.Now(),
		},
	}
}

func (b *PropertyBuilder) WithTitle(title string) *PropertyBuilder {
	b.property.Title = title
	return b
}

func (b *PropertyBuilder) WithCity(city string) *PropertyBuilder {
	b.property.Location.City = city
	return b
}

func (b *PropertyBuilder) WithPricePerNightSen(sen int64) *PropertyBuilder {
	b.property.PricePerNightSen = sen
	return b
}

func (b *PropertyBuilder) WithMaxGuests(guests int) *PropertyBuilder {
	b.property.MaxGuests = guests
	return b
}

func (b *PropertyBuilder) WithWhatsAppNumber(number string) *PropertyBuilder {
	b.property.WhatsAppNumber = number
	return b
}

func (b *PropertyBuilder) WithStatus(status string) *PropertyBuilder {
	b.property.Status = status
	return b
}

func (b *PropertyBuilder) Build() model.Property {
	return b.property
}

func ValidProperty() model.Property {
	return NewPropertyBuilder().Build()
}

func InvalidPhoneProperty() model.Property {
	return NewPropertyBuilder().
		WithWhatsAppNumber("not-a-phone").
		Build()
}

// FutureDay returns the YYYY-MM-DD key for a day n days from now.
func FutureDay(n int) string {
	return time.Now().UTC().AddDate(0, 0, n).Format("2006-01-02")
}
