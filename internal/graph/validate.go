package graph

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type addBookInput struct {
	Title     string   `validate:"required"`
	Published int      `validate:"gte=0,lte=2100"`
	Author    string   `validate:"required"`
	Genres    []string `validate:"dive,required"`
}

type createUserInput struct {
	Username      string `validate:"required,min=3"`
	Password      string `validate:"required"`
	FavoriteGenre string `validate:"required"`
}

// validateStruct returns one message per failed field, in declaration order.
func validateStruct(s any) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var msgs []string
	for _, fe := range err.(validator.ValidationErrors) {
		field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", field))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "gte", "lte":
			msgs = append(msgs, fmt.Sprintf("%s is out of range", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", field))
		}
	}
	return msgs
}
