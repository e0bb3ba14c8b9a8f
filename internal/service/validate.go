package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"ouvidoria-ativa/internal/domain"
)

var validate = validator.New()

func validateInput(input any) error {
	if err := validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
