package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
)

// respondJSON отправляет JSON ответ
func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"Failed to marshal response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondSuccess отправляет данные в общей обертке
func respondSuccess(w http.ResponseWriter, code int, data interface{}) {
	respondJSON(w, code, map[string]interface{}{
		"success": true,
		"data":    data,
	})
}

// respondError отправляет JSON ответ с ошибкой
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// statusFor переводит категорию доменной ошибки в HTTP статус
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrAlreadyMatriculated):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrState):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondDomainError отвечает по категории ошибки.
// Текст внутренних ошибок наружу не отдается
func respondDomainError(w http.ResponseWriter, log logger.Logger, err error, fallback string) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Error(fallback, map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, code, fallback)
		return
	}
	respondError(w, code, err.Error())
}

// decodeJSON разбирает тело запроса. Пустое тело допустимо, если allowEmpty
func decodeJSON(r *http.Request, dst interface{}, allowEmpty bool) error {
	if r.Body == nil {
		if allowEmpty {
			return nil
		}
		return io.EOF
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if allowEmpty && errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// plateParam извлекает номер автомобиля из пути
func plateParam(r *http.Request) string {
	return domain.NormalizePlate(chi.URLParam(r, "plate"))
}
