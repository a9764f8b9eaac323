package usecase

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wekeepgrowing/audit-service/internal/domain/dto"
	apperrors "github.com/wekeepgrowing/audit-service/internal/domain/errors"
)

// violationMessages maps "field.tag" to the message surfaced to the caller.
// The same bounds are enforced by the client forms; this is the boundary
// check that holds even if the edge is bypassed.
var violationMessages = map[string]string{
	"audit_order_number.required": "Audit order number is required",
	"audit_order_number.min":      "Audit order number must be at least 2 characters long",
	"audit_order_number.max":      "Audit order number must not exceed 20 characters",
	"protocol.required":           "Protocol is required",
	"protocol.min":                "Protocol must be at least 1000 characters long",
	"protocol.max":                "Protocol must not exceed 10000 characters",
}

func newCommandValidator() *validator.Validate {
	v := validator.New()

	// Report violations under the json field names the caller sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validateCommand runs struct validation and translates violations into a
// field→message map. Pure; no backend call is made on failure.
func validateCommand(v *validator.Validate, cmd interface{}) *apperrors.ValidationError {
	err := v.Struct(cmd)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidationError("body", "invalid request body")
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fe.Field() + "." + fe.Tag()
		if msg, ok := violationMessages[key]; ok {
			fields[fe.Field()] = msg
		} else {
			fields[fe.Field()] = "invalid value"
		}
	}

	return &apperrors.ValidationError{Fields: fields}
}

// ValidateCreateAudit checks the create payload bounds.
func ValidateCreateAudit(v *validator.Validate, cmd *dto.CreateAuditCommand) *apperrors.ValidationError {
	return validateCommand(v, cmd)
}

// ValidateUpdateAudit checks the update payload. An empty command is a
// validation failure; absent fields are otherwise allowed.
func ValidateUpdateAudit(v *validator.Validate, cmd *dto.UpdateAuditCommand) *apperrors.ValidationError {
	if cmd.IsEmpty() {
		return apperrors.NewValidationError("body", "At least one of protocol, description or summary must be provided")
	}
	return validateCommand(v, cmd)
}
