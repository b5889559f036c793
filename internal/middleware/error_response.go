package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/hitoshi/teamfeed/internal/model"
)

// ErrorResponseBody はAPIエラーレスポンスのJSON表現。
// 空の値でも4フィールドすべてを出力する。
type ErrorResponseBody struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// NewErrorResponseBody はAPIErrorをレスポンスボディに変換する。
func NewErrorResponseBody(apiErr *model.APIError) ErrorResponseBody {
	if apiErr == nil {
		apiErr = model.NewInternalError()
	}
	return ErrorResponseBody{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	}
}

// WriteErrorResponse はAPIErrorをstatusCodeのJSONレスポンスとして書き込む。
// apiErrがnilの場合はINTERNAL_ERRORの内容を書く。
func WriteErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	writeErrorBody(w, statusCode, NewErrorResponseBody(apiErr))
}

// WriteInternalServerError は500 INTERNAL_ERRORを書き込む。
// 原因はログにだけ残し、クライアントには汎用メッセージを返す。
func WriteInternalServerError(w http.ResponseWriter) {
	WriteErrorResponse(w, http.StatusInternalServerError, model.NewInternalError())
}

func writeErrorBody(w http.ResponseWriter, statusCode int, body ErrorResponseBody) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
