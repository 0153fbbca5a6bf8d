package validator

import (
	"log"

	"dealflow_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила на основе statuses.go
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-type", validateUserType)
	mustRegister("is-stage", validateStage)
	mustRegister("is-investor-type", validateInvestorType)
	mustRegister("is-swipe-direction", validateSwipeDirection)
}

// Пустые значения пропускаем, для этого есть 'required'

func validateUserType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.UserType(value).Valid()
}

func validateStage(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.StartupStage(value).Valid()
}

func validateInvestorType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.InvestorType(value).Valid()
}

func validateSwipeDirection(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.SwipeDirection(value).Valid()
}
