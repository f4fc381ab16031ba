package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes - JSON 요청 본문 최대 크기
const MaxBodyBytes = 1 << 20

var (
	ErrEmptyBody   = errors.New("empty JSON body")
	ErrInvalidJSON = errors.New("invalid JSON body")
	ErrTooLarge    = errors.New("JSON body too large")
)

// FieldTypeError - JSON 은 올바르지만 필드 타입이 맞지 않는 경우 (예: {"style": 5})
type FieldTypeError struct {
	Field string
	Err   error
}

func (e *FieldTypeError) Error() string {
	return fmt.Sprintf("invalid type for field %q: %v", e.Field, e.Err)
}

func (e *FieldTypeError) Unwrap() []error {
	return []error{ErrInvalidJSON, e.Err}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator - 공용 validator 인스턴스
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// DecodeObject - JSON 객체 본문 디코딩.
// 본문이 비었거나 null/{} 이면 ErrEmptyBody, MaxBodyBytes 초과 시 ErrTooLarge,
// 필드 타입 불일치는 *FieldTypeError, 그 외 파싱 실패는 ErrInvalidJSON
func DecodeObject(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrTooLarge
		}
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ErrEmptyBody
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if len(fields) == 0 {
		return ErrEmptyBody
	}

	if err := json.Unmarshal(raw, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &FieldTypeError{Field: typeErr.Field, Err: err}
		}
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

// FailedField - 검증 실패한 첫 필드의 (json 이름이 아닌) 구조체 필드명과 태그
func FailedField(err error) (field, tag string, ok bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "", "", false
	}
	return verrs[0].StructField(), verrs[0].Tag(), true
}
