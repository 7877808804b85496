package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// RegisterPointRequest carries the multipart form fields of a point
// registration. The image file itself travels separately in the request.
// Coordinates are pointers so an absent field is distinguishable from a
// legitimate zero (the equator/Greenwich are valid locations).
type RegisterPointRequest struct {
	Name       string   `form:"name" binding:"required"`
	Email      string   `form:"email" binding:"required"`
	Whatsapp   string   `form:"whatsapp" binding:"required"`
	Latitude   *float64 `form:"latitude"`
	Longitude  *float64 `form:"longitude"`
	City       string   `form:"city" binding:"required"`
	UF         string   `form:"uf" binding:"required"`
	Categories string   `form:"categories" binding:"required"`
}

func (req *RegisterPointRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Whatsapp, validation.Required, validation.Length(8, 20)),
		validation.Field(&req.Latitude, validation.NotNil, validation.Min(-90.0), validation.Max(90.0)),
		validation.Field(&req.Longitude, validation.NotNil, validation.Min(-180.0), validation.Max(180.0)),
		validation.Field(&req.City, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.UF, validation.Required, validation.Length(2, 2)),
		validation.Field(&req.Categories, validation.Required),
	)
}
