// Package dataset loads campsite records and checks them before they reach the clustering code.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"

	"github.com/lintang-b-s/campsite-explorer/pkg/datastructure"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var (
	ErrInvalidCampsite = errors.New("invalid campsite")
)

// Loader decodes and validates campsite datasets.
// the clustering engine does not guard against NaN or out of range coordinates, this does.
type Loader struct {
	validate *validator.Validate
	trans    ut.Translator
}

func NewLoader() *Loader {
	validate := validator.New()
	_ = validate.RegisterValidation("finite", isFinite)

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)
	_ = validate.RegisterTranslation("finite", trans, func(ut ut.Translator) error {
		return ut.Add("finite", "{0} must be a finite number", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("finite", fe.Field())
		return t
	})

	return &Loader{
		validate: validate,
		trans:    trans,
	}
}

func isFinite(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}

// LoadJSON decodes a JSON array of campsites, numbers them 1..n in file order and validates them.
func (l *Loader) LoadJSON(r io.Reader) ([]datastructure.Campsite, error) {
	var campsites []datastructure.Campsite
	if err := json.NewDecoder(r).Decode(&campsites); err != nil {
		return nil, fmt.Errorf("decode campsites: %w", err)
	}

	for i := range campsites {
		campsites[i].ID = i + 1
	}

	if err := l.Validate(campsites); err != nil {
		return nil, err
	}
	return campsites, nil
}

// LoadFile. LoadJSON on a plain, .gz or .zst file.
func (l *Loader) LoadFile(path string) ([]datastructure.Campsite, error) {
	rc, err := OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	campsites, err := l.LoadJSON(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return campsites, nil
}

// Validate reports every invalid campsite in one error.
func (l *Loader) Validate(campsites []datastructure.Campsite) error {
	var errs []error
	for _, campsite := range campsites {
		if err := l.ValidateCampsite(campsite); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (l *Loader) ValidateCampsite(campsite datastructure.Campsite) error {
	err := l.validate.Struct(campsite)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msgs = append(msgs, e.Translate(l.trans))
	}
	return fmt.Errorf("%w %d (%s): %s", ErrInvalidCampsite, campsite.ID, campsite.SiteName, strings.Join(msgs, "; "))
}
