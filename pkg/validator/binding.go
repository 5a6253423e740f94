package validator

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/virtualhotel/hotel-backend/internal/models"
)

// tags lists the custom struct tags understood by request models
var tags = map[string]validator.Func{
	"roomtype": func(fl validator.FieldLevel) bool {
		return models.RoomType(fl.Field().String()).IsValid()
	},
	"roomstatus": func(fl validator.FieldLevel) bool {
		return models.RoomStatus(fl.Field().String()).IsValid()
	},
	"bookingstatus": func(fl validator.FieldLevel) bool {
		return models.BookingStatus(fl.Field().String()).IsValid()
	},
	"paymentstatus": func(fl validator.FieldLevel) bool {
		return models.PaymentStatus(fl.Field().String()).IsValid()
	},
	"staydate": func(fl validator.FieldLevel) bool {
		_, err := models.ParseStayDate(fl.Field().String(), time.UTC)
		return err == nil
	},
	"phone": func(fl validator.FieldLevel) bool {
		return NewPhoneValidator().IsValid(fl.Field().String())
	},
}

// Register adds the hotel validation tags to v
func Register(v *validator.Validate) error {
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register %q validation: %w", tag, err)
		}
	}
	return nil
}

// RegisterGinValidators installs the hotel validation tags on gin's default validator
func RegisterGinValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected gin validator engine %T", binding.Validator.Engine())
	}
	return Register(v)
}
