package form

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/es"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	es_translations "github.com/go-playground/validator/v10/translations/es"
	"github.com/shopspring/decimal"
)

// FieldError 是某个字段没有通过校验的原因
type FieldError struct {
	Field   string
	Tag     string
	Message string
}

// ValidationError 表示表单没有通过本地校验，请求不会发到后端
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Field(name string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f, true
		}
	}
	return FieldError{}, false
}

func (e *ValidationError) Messages() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		// 同一个字段只保留第一条消息
		if _, ok := m[f.Field]; !ok {
			m[f.Field] = f.Message
		}
	}
	return m
}

type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func NewValidator() (*Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	es := es.New()
	uni := ut.New(es, es)
	trans, _ := uni.GetTranslator("es")
	if err := es_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	// 错误以表单字段名（与后端字段一致）为键，没有 form 标签时使用 json 名
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("form"); name != "" && name != "-" {
			return name
		}
		if name, _, _ := strings.Cut(fld.Tag.Get("json"), ","); name != "" && name != "-" {
			return name
		}
		return fld.Name
	})

	if err := validate.RegisterValidation("positive", isPositiveDecimal); err != nil {
		return nil, err
	}
	if err := validate.RegisterValidation("nonnegative", isNonNegativeDecimal); err != nil {
		return nil, err
	}
	validate.RegisterStructValidation(positionSalaryRange, PositionDraft{})

	messages := map[string]string{
		"required":     "{0} es requerido",
		"email":        "El email no es válido",
		"positive":     "{0} debe ser mayor a 0",
		"nonnegative":  "{0} no puede ser negativo",
		"datetime":     "{0} debe tener el formato AAAA-MM-DD",
		"salary_range": "El salario máximo debe ser mayor al mínimo",
	}
	for tag, msg := range messages {
		if err := registerMessage(validate, trans, tag, msg); err != nil {
			return nil, err
		}
	}

	return &Validator{validate: validate, translator: trans}, nil
}

// Check 校验整个草稿，返回 *ValidationError 或 nil
func (v *Validator) Check(draft any) error {
	err := v.validate.Struct(draft)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	ve := &ValidationError{}
	for _, fe := range validationErrors {
		ve.Fields = append(ve.Fields, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fe.Translate(v.translator),
		})
	}
	return ve
}

func registerMessage(validate *validator.Validate, trans ut.Translator, tag, msg string) error {
	return validate.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, err := ut.T(tag, fe.Field())
			if err != nil {
				return fe.Error()
			}
			return t
		},
	)
}

func isPositiveDecimal(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil && d.IsPositive()
}

// 职位的薪资范围允许为 0
func isNonNegativeDecimal(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	return err == nil && !d.IsNegative()
}

// positionSalaryRange 检查同时填写的最低和最高薪资
func positionSalaryRange(sl validator.StructLevel) {
	draft := sl.Current().Interface().(PositionDraft)
	if draft.SalaryMin == "" || draft.SalaryMax == "" {
		return
	}

	lo, err := decimal.NewFromString(draft.SalaryMin)
	if err != nil {
		return
	}
	hi, err := decimal.NewFromString(draft.SalaryMax)
	if err != nil {
		return
	}

	if lo.GreaterThan(hi) {
		sl.ReportError(draft.SalaryMax, "salario_max", "SalaryMax", "salary_range", "")
	}
}
