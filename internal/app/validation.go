package app

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"bookshelf/internal/domain/entities"
)

// MinAge - минимальный возраст пользователя, считая год равным 365.25 дня.
const MinAge = 18 * 365.25 * 24 * time.Hour

// MinPasswordLength - минимальная длина пароля в открытом виде.
const MinPasswordLength = 5

// Виды ошибок валидации, возвращаемые клиенту в поле kind.
const (
	KindRequired    = "required"
	KindRegexp      = "regexp"
	KindMinLength   = "minlength"
	KindUserDefined = "user defined"
	KindUUID        = "uuid"
)

const (
	tagEmailShape = "emailshape"
	tagAdult      = "adult"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type bookRules struct {
	Title  string  `json:"title" validate:"required"`
	Author string  `json:"author" validate:"required"`
	ISBN   string  `json:"isbn" validate:"required"`
	Owner  *string `json:"owner" validate:"omitnil,uuid"`
}

type userRules struct {
	Email     string    `json:"email" validate:"required,emailshape"`
	FullName  string    `json:"fullName" validate:"required"`
	BirthDate time.Time `json:"birthDate" validate:"required,adult"`
}

// Validator проверяет сущности перед сохранением.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator создает валидатор с правилами книг и пользователей.
func NewValidator() *Validator {
	v := &Validator{validate: validator.New(), now: time.Now}

	v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.validate.RegisterValidation(tagEmailShape, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation(tagAdult, func(fl validator.FieldLevel) bool {
		birthDate, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !birthDate.After(v.now().Add(-MinAge))
	})

	return v
}

// Book проверяет обязательные поля и ссылку на владельца.
func (v *Validator) Book(book *entities.Book) error {
	return v.check(bookRules{
		Title:  book.Title,
		Author: book.Author,
		ISBN:   book.ISBN,
		Owner:  book.OwnerID,
	})
}

// User проверяет пользователя; password проверяется только если передан.
func (v *Validator) User(user *entities.User, password *string) error {
	verr := entities.NewValidationError()

	if err := v.collect(verr, userRules{
		Email:     user.Email,
		FullName:  user.FullName,
		BirthDate: user.BirthDate,
	}); err != nil {
		return err
	}

	if password != nil {
		switch {
		case *password == "":
			verr.Add("password", KindRequired, requiredMessage("password"))
		case utf8.RuneCountInString(*password) < MinPasswordLength:
			verr.Add("password", KindMinLength,
				fmt.Sprintf("Path `password` is shorter than the minimum allowed length (%d).", MinPasswordLength))
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

func (v *Validator) check(rules any) error {
	verr := entities.NewValidationError()
	if err := v.collect(verr, rules); err != nil {
		return err
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

func (v *Validator) collect(verr *entities.ValidationError, rules any) error {
	err := v.validate.Struct(rules)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validating %T: %w", rules, err)
	}

	for _, fe := range fieldErrs {
		path := fe.Field()
		kind, message := describe(fe)
		verr.Add(path, kind, message)
	}
	return nil
}

func describe(fe validator.FieldError) (string, string) {
	path := fe.Field()
	switch fe.Tag() {
	case "required":
		return KindRequired, requiredMessage(path)
	case tagEmailShape:
		return KindRegexp, fmt.Sprintf("Path `%s` is invalid (%v).", path, fe.Value())
	case tagAdult:
		value := fe.Value()
		if t, ok := value.(time.Time); ok {
			value = t.UTC().Format(time.RFC3339)
		}
		return KindUserDefined, fmt.Sprintf("Validator failed for path `%s` with value `%v`", path, value)
	case "uuid":
		return KindUUID, fmt.Sprintf("Cast to UUID failed for value \"%v\" at path \"%s\"", fe.Value(), path)
	default:
		return fe.Tag(), fmt.Sprintf("Path `%s` is invalid.", path)
	}
}

func requiredMessage(path string) string {
	return fmt.Sprintf("Path `%s` is required.", path)
}
