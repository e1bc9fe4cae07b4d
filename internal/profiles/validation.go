package profiles

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// MinSkills is the minimum number of comma-separated technical skills.
const MinSkills = 2

// RegisterValidations adds the profile binding rules to v.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("skills", validateSkills); err != nil {
		return err
	}
	return v.RegisterValidation("notblank", validators.NotBlank)
}

func validateSkills(fl validator.FieldLevel) bool {
	return CountSkills(fl.Field().String()) >= MinSkills
}

// CountSkills counts the non-empty comma-separated entries of a skills list.
func CountSkills(skills string) int {
	n := 0
	for _, s := range strings.Split(skills, ",") {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}
