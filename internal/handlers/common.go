package handlers

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/taskboard/taskboard-api/internal/errors"
)

// Validation errors report fields by their JSON key, not the Go identifier.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindJSON binds the request body into obj, responding with a 400 on failure.
// Missing required fields are reported back by name so clients can highlight
// the offending inputs.
func bindJSON(c *gin.Context, obj any) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		var required []string
		for _, fieldErr := range validationErrs {
			if fieldErr.Tag() == "required" {
				required = append(required, fieldErr.Field())
			}
		}
		if len(required) > 0 {
			apierrors.BadRequestWithDetails(c, "Missing required fields", gin.H{"required": required})
			return false
		}
	}

	apierrors.BadRequest(c, "Invalid request body")
	return false
}

// parseIDParam parses the :id path parameter, responding with a 400 on failure.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return id, true
}
