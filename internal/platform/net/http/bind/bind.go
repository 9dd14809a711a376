// Package bind decodes request bodies and query strings and validates them
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"

	perr "robots/internal/platform/errors"
	"robots/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce    sync.Once
	vSvc     *ValidatorSvc
	jsonMore = func(dec *json.Decoder) bool { return dec.More() } // seam
)

// Init initializes the singleton validator with english translations
// field names in messages come from the query tag, then the json tag
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(tagName)

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		registerShortMin(v, trans)
		registerShortMax(v, trans)
		registerPositiveInt(v, trans)

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc { return Init() }

func tagName(fld reflect.StructField) string {
	for _, key := range []string{"query", "json"} {
		tag := fld.Tag.Get(key)
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		if tag != "" && tag != "-" {
			return tag
		}
	}
	return fld.Name
}

// JSONOptions controls body parsing
type JSONOptions struct {
	MaxBytes int64 // default 1MB
}

func defaultJSONOptions() JSONOptions { return JSONOptions{MaxBytes: 1 << 20} }

// ParseObject reads a JSON object body into a map
// an empty or whitespace-only body reads as an empty object; anything that is
// not a single JSON object is a JSON error
func ParseObject(r *http.Request, opts ...JSONOptions) (map[string]any, error) {
	o := defaultJSONOptions()
	if len(opts) > 0 && opts[0].MaxBytes > 0 {
		o = opts[0]
	}
	if r.Body == nil {
		return map[string]any{}, nil
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Error().Err(err).Msg("failed to close request body")
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(r.Body, o.MaxBytes+1))
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "failed to read body")
	}
	if int64(len(raw)) > o.MaxBytes {
		return nil, perr.JSONErrf("request body exceeds %d bytes", o.MaxBytes)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, perr.JSONErrf("invalid JSON: %v", err)
	}
	if jsonMore(dec) {
		return nil, perr.JSONErrf("unexpected trailing data")
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, perr.JSONErrf("request body must be a JSON object")
	}
	return obj, nil
}

// ParseQuery fills T from the request query string
// only fields tagged `query:"name"` of type string or *string are bindable;
// unknown keys are rejected and the first value of a repeated key wins.
// The result is then validated with the struct's validate tags
func ParseQuery[T any](r *http.Request) (T, error) {
	var dst T
	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return dst, perr.Newf(perr.ErrorCodeUnknown, "bind: ParseQuery needs a struct, got %s", rv.Kind())
	}

	fields := map[string]reflect.Value{}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		name := rt.Field(i).Tag.Get("query")
		if name == "" || name == "-" {
			continue
		}
		fields[name] = rv.Field(i)
	}

	for key, vals := range r.URL.Query() {
		fv, ok := fields[key]
		if !ok {
			return dst, perr.WithField(perr.InvalidParamsf("unknown query parameter %q", key), key)
		}
		if len(vals) == 0 {
			continue
		}
		val := vals[0]
		switch {
		case fv.Kind() == reflect.String:
			fv.SetString(val)
		case fv.Kind() == reflect.Pointer && fv.Type().Elem().Kind() == reflect.String:
			fv.Set(reflect.ValueOf(&val))
		default:
			return dst, perr.Newf(perr.ErrorCodeUnknown, "bind: query field %q must be string or *string", key)
		}
	}

	if err := Get().Validator.Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			logger.C(r.Context()).Error().Err(inv).Msg("validator internal error")
			return dst, perr.Wrapf(inv, perr.ErrorCodeUnknown, "validation error")
		}
		field, msg := ValidationFieldAndMessage(err)
		return dst, perr.WithField(perr.InvalidParamsf("%s", msg), field)
	}
	return dst, nil
}

// ValidationFieldAndMessage returns the first field and translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return "", inv.Error()
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

// PositiveInt parses s as a base 10 int64; ok is false unless it is greater than zero
func PositiveInt(s string) (n int64, ok bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// custom translations with short messages

func registerShortMin(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("min", trans,
		func(ut ut.Translator) error {
			return ut.Add("min", "{0} must be at least {1}", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("min", fe.Field(), fe.Param())
			return msg
		},
	)
}

func registerShortMax(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterTranslation("max", trans,
		func(ut ut.Translator) error {
			return ut.Add("max", "{0} must be at most {1}", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("max", fe.Field(), fe.Param())
			return msg
		},
	)
}

// positive_int accepts strings holding an integer greater than zero
func registerPositiveInt(v *validator.Validate, trans ut.Translator) {
	_ = v.RegisterValidation("positive_int", func(fl validator.FieldLevel) bool {
		_, ok := PositiveInt(fl.Field().String())
		return ok
	})
	_ = v.RegisterTranslation("positive_int", trans,
		func(ut ut.Translator) error {
			return ut.Add("positive_int", "{0} must be a positive integer", true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T("positive_int", fe.Field())
			return msg
		},
	)
}
