package domain

import "time"

// Point is a registered recycling collection location.
type Point struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Whatsapp  string  `json:"whatsapp"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	City      string  `json:"city"`
	UF        string  `json:"uf"`
	Image     string  `json:"image"`
	ImageURL  string  `json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PointDetail is a point together with the titles of the categories it accepts.
type PointDetail struct {
	Point      Point    `json:"point"`
	Categories []string `json:"categories"`
}
