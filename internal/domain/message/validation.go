package message

import (
	"strings"

	chat_errors "leo-chat/pkg/errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the shape of a message before it is persisted.
func (m *Message) Validate() error {
	if m == nil {
		return chat_errors.Invalid("message is required")
	}
	if err := validate.Struct(m); err != nil {
		return chat_errors.Invalid("%s", err.Error())
	}
	if !m.HasOffer {
		return nil
	}
	if strings.TrimSpace(m.Offer.GigTitle) == "" {
		return chat_errors.Invalid("offer gig title is required")
	}
	if !m.Offer.Price.IsPositive() {
		return chat_errors.Invalid("offer price must be positive")
	}
	if m.Offer.DeliveryInDays <= 0 {
		return chat_errors.Invalid("offer delivery days must be positive")
	}
	return nil
}
