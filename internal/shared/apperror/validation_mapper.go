package apperror

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const validationFailedMessage = "Validasi gagal"

var (
	fieldMessagesMu sync.RWMutex
	fieldMessages   = map[string]string{}
	fieldLabels     = map[string]string{}
)

// RegisterFieldMessages sets the message reported for a json field when any
// of its validation rules fail. Modules call this from their init.
func RegisterFieldMessages(messages map[string]string) {
	fieldMessagesMu.Lock()
	defer fieldMessagesMu.Unlock()
	for field, msg := range messages {
		fieldMessages[field] = msg
	}
}

// RegisterFieldLabels sets the human name used in type mismatch messages.
func RegisterFieldLabels(labels map[string]string) {
	fieldMessagesMu.Lock()
	defer fieldMessagesMu.Unlock()
	for field, label := range labels {
		fieldLabels[field] = label
	}
}

func labelFor(field string) string {
	fieldMessagesMu.RLock()
	label, ok := fieldLabels[field]
	fieldMessagesMu.RUnlock()
	if ok {
		return label
	}
	return formatFieldName(field)
}

func lookupFieldMessage(field string) (string, bool) {
	fieldMessagesMu.RLock()
	defer fieldMessagesMu.RUnlock()
	msg, ok := fieldMessages[field]
	return msg, ok
}

// formatFieldName: recipient_phone -> Recipient Phone
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

func messageFor(field, tag string) string {
	if msg, ok := lookupFieldMessage(field); ok {
		return msg
	}
	human := formatFieldName(field)
	if tag == "required" {
		return human + " wajib diisi"
	}
	return human + " tidak valid"
}

func typeMessage(field string, kind reflect.Kind) string {
	label := labelFor(field)
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return label + " harus berupa bilangan bulat"
	case reflect.Float32, reflect.Float64:
		return label + " harus berupa angka"
	case reflect.Bool:
		return label + " harus berupa true atau false"
	case reflect.String:
		return label + " harus berupa teks"
	default:
		return label + " tidak valid"
	}
}

// NewTypeError reports a value that could not be converted to the field type.
func NewTypeError(field string, kind reflect.Kind) *AppError {
	return NewValidationError(map[string][]string{field: {typeMessage(field, kind)}})
}

// NewValidationError builds the 400 envelope error carrying field -> messages.
func NewValidationError(fields map[string][]string) *AppError {
	return New(CodeValidation, validationFailedMessage, http.StatusBadRequest).WithDetails(fields)
}

// MapValidationError converts binding errors into a validation AppError.
// Field names come from json tags (see Init).
func MapValidationError(err error) *AppError {
	fields := map[string][]string{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			field := e.Field()
			msg := messageFor(field, e.Tag())
			if !contains(fields[field], msg) {
				fields[field] = append(fields[field], msg)
			}
		}
		return NewValidationError(fields)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" && typeErr.Type != nil {
		return NewTypeError(typeErr.Field, typeErr.Type.Kind())
	}

	return New(CodeValidation, validationFailedMessage, http.StatusBadRequest)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
