package model

import "time"

type Hotel struct {
	ID          string    `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Location    string    `json:"location" bson:"location"`
	Image       string    `json:"image" bson:"image"`
	Price       float64   `json:"price" bson:"price"`
	Description string    `json:"description" bson:"description"`
	Amenities   []string  `json:"amenities" bson:"amenities"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
}

// CreateHotelRequest is the full hotel shape accepted by create and update.
// Price is a pointer so a missing price is told apart from a zero price.
type CreateHotelRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Location    string   `json:"location" validate:"required,max=200"`
	Image       string   `json:"image" validate:"required,max=2048"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description string   `json:"description" validate:"required,max=5000"`
	Amenities   []string `json:"amenities" validate:"omitempty,max=100,dive,required,max=100"`
}

// ToHotel converts a validated request into a Hotel. Amenities default to an
// empty list.
func (r *CreateHotelRequest) ToHotel() *Hotel {
	amenities := r.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	var price float64
	if r.Price != nil {
		price = *r.Price
	}
	return &Hotel{
		Name:        r.Name,
		Location:    r.Location,
		Image:       r.Image,
		Price:       price,
		Description: r.Description,
		Amenities:   amenities,
	}
}

const (
	SortPriceAsc         = "price_asc"
	SortPriceDesc        = "price_desc"
	SortAlphabeticalAsc  = "alphabetical_asc"
	SortAlphabeticalDesc = "alphabetical_desc"
)

// HotelFilter narrows GetAll. Nil or empty fields do not filter.
type HotelFilter struct {
	Location string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
}
