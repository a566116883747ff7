package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	msgAllFieldsRequired = "All fields are required"
	msgInvalidBody       = "Invalid request body"
)

// FieldError is one entry of the "fields" list in a 400 body.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

var registerJSONNames sync.Once

// useJSONFieldNames makes validator report fields by their json tag, so a
// missing bank account is "bank_account_no" rather than "BankAccountNo".
func useJSONFieldNames() {
	registerJSONNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(sf reflect.StructField) string {
			name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return sf.Name
			}
			return name
		})
	})
}

// BindJSON decodes and validates the body into out. On failure it answers 400
// and returns false; the handler must not touch the store.
func BindJSON(ctx *gin.Context, out any) bool {
	useJSONFieldNames()

	if err := ctx.ShouldBindJSON(out); err != nil {
		message, details := describeBindError(err)
		RespondBadRequest(ctx, message, details)
		return false
	}

	return true
}

func describeBindError(err error) (string, gin.H) {
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		fields := make([]FieldError, 0, len(invalid))

		for _, fe := range invalid {
			fields = append(fields, FieldError{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Param:   fe.Param(),
				Message: ruleMessage(fe.Tag(), fe.Param()),
			})
		}

		return msgAllFieldsRequired, gin.H{"fields": fields}
	}

	if errors.Is(err, io.EOF) {
		return msgAllFieldsRequired, nil
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return msgInvalidBody, gin.H{"json": "invalid_json_syntax"}
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}

		return msgInvalidBody, gin.H{
			"json":  "invalid_json_type",
			"field": field,
			"fields": []FieldError{{
				Field:   field,
				Rule:    "type",
				Message: "must be a " + typeErr.Type.String(),
			}},
		}
	}

	return msgInvalidBody, gin.H{"reason": err.Error()}
}

func ruleMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return "must be greater than " + param
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	case "oneof":
		if strings.Contains(param, "January") {
			return "must be a full English month name"
		}
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	default:
		return "failed " + rule + " validation"
	}
}
