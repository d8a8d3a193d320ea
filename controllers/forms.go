package controllers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type RegisterForm struct {
	Username        string `form:"username" binding:"required,min=2,max=20"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required"`
	ConfirmPassword string `form:"confirm_password" binding:"required,eqfield=Password"`
}

type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
	Remember bool   `form:"remember"`
}

type FoodEntryForm struct {
	FoodName string  `form:"food_name" binding:"required"`
	Gram     float64 `form:"gram" binding:"required"`
	Calorie  float64 `form:"calorie"`
	Protein  float64 `form:"protein"`
	Carb     float64 `form:"carb"`
	Fat      float64 `form:"fat"`
}

type TargetForm struct {
	TDEE    float64 `form:"tdee" binding:"required"`
	Protein float64 `form:"tdee_p" binding:"required"`
	Carb    float64 `form:"tdee_c" binding:"required"`
	Fat     float64 `form:"tdee_f" binding:"required"`
}

type DeleteEntryForm struct {
	FoodName string `form:"food_name_deleted" binding:"required"`
}

type RenameEntryForm struct {
	OldName string `form:"old_name" binding:"required"`
	NewName string `form:"new_name" binding:"required"`
}

// fieldErrors flattens a binding error into per-field messages keyed
// by lowercased field name, for the re-rendered form. Errors that are
// not validator errors (e.g. a non-numeric value in a numeric field)
// become a single form-level message.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "Invalid input. Please check the submitted values."
		return out
	}

	for _, e := range verrs {
		var msg string
		switch e.Tag() {
		case "required":
			msg = "This field is required."
		case "email":
			msg = "Please enter a valid email address."
		case "min":
			msg = fmt.Sprintf("Must be at least %s characters.", e.Param())
		case "max":
			msg = fmt.Sprintf("Must be at most %s characters.", e.Param())
		case "eqfield":
			msg = "Passwords must match."
		default:
			msg = "Invalid value."
		}
		out[strings.ToLower(e.Field())] = msg
	}
	return out
}
