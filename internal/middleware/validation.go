package middleware

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// courseIDPattern matches the opaque course identifiers pushed from the
// learning platform, e.g. "course-v1:OU+CS101+2026".
var courseIDPattern = regexp.MustCompile(`^course-v1:[^/+ ]+\+[^/+ ]+\+[^/+ ]+$`)

// RegisterCustomValidators wires the courseid rule into gin's binding
// engine. Called once during bootstrap.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("courseid", validCourseID)
	}
}

func validCourseID(fl validator.FieldLevel) bool {
	return courseIDPattern.MatchString(fl.Field().String())
}
