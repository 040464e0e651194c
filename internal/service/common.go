package service

import (
	"errors"

	"microsite-shop/internal/apperr"
	"microsite-shop/internal/ws"
	"microsite-shop/pkg/validator"

	"gorm.io/gorm"
)

// EventPublisher receives admin feed events. *ws.Hub implements it.
type EventPublisher interface {
	Publish(evt ws.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(ws.Event) {}

// NopPublisher discards every event.
var NopPublisher EventPublisher = nopPublisher{}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// validate runs struct validation and converts the first failure into a 400.
func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return apperr.Validation(validator.Message(errs))
	}
	return nil
}
