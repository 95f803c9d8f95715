package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrSessionExpired 表示后端以 401 拒绝了当前令牌，会话已被清除
	ErrSessionExpired = errors.New("la sesión ha expirado, inicie sesión nuevamente")
	// ErrMalformedResponse 表示 2xx 响应体无法解析为预期的记录
	ErrMalformedResponse = errors.New("respuesta inválida del servidor")
)

// APIError 是后端返回的非 2xx 响应
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return e.Detail
}

// NetworkError 表示请求没有发出去或者响应没有收到
type NetworkError struct {
	Method string
	Path   string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("no se pudo contactar al servidor (%s %s): %v", e.Method, e.Path, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

func IsNetwork(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// parseAPIError 尝试读取 {"detail": ...}，读不出来时退回到通用消息
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		Status: status,
		Detail: fmt.Sprintf("HTTP error %d", status),
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}
	if len(payload.Detail) == 0 || string(payload.Detail) == "null" {
		return apiErr
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		if detail != "" {
			apiErr.Detail = detail
		}
		return apiErr
	}

	// 校验错误之类的结构化 detail 原样压缩成一行
	var buf bytes.Buffer
	if err := json.Compact(&buf, payload.Detail); err == nil {
		apiErr.Detail = buf.String()
	}
	return apiErr
}
