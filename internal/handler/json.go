package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/paiban/nurseplan/pkg/errors"
	"github.com/paiban/nurseplan/pkg/logger"
)

// maxBodyBytes 请求体上限
const maxBodyBytes = 4 << 20

// readJSON 解码并校验请求体
func (h *Handler) readJSON(w http.ResponseWriter, r *http.Request, v any) *errors.AppError {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败").WithDetails(err.Error())
	}
	if err := h.validate.Struct(v); err != nil {
		return h.validationError(err)
	}
	return nil
}

// validationError 将校验错误翻译为中文字段错误
func (h *Handler) validationError(err error) *errors.AppError {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(err, errors.CodeInvalidInput, "请求校验失败")
	}
	ve := &errors.ValidationErrors{}
	for _, fe := range verrs {
		ve.Add(fe.Namespace(), fe.Translate(h.translator))
	}
	return ve.ToAppError()
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("写入响应失败")
	}
}

// respondError 返回错误响应，非 AppError 视为内部错误
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.Wrap(err, errors.CodeInternal, "服务器内部错误")
	}
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		logger.WithContext(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("服务器内部错误")
	}
	respondJSON(w, r, appErr.HTTPStatus, map[string]interface{}{
		"error":   true,
		"code":    appErr.Code,
		"message": appErr.Message,
		"details": appErr.Details,
		"fields":  appErr.Fields,
	})
}
