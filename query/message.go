package query

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// ErrEmptyMessage 空行を受信した場合のエラー
var ErrEmptyMessage = errors.New("empty message")

// Request 素数判定のリクエスト。1行1リクエストのJSON。
type Request struct {
	Id        string `json:"id"`
	Candidate int64  `json:"candidate"`
}

// Response 素数判定の応答
type Response struct {
	Id        string `json:"id"`
	Candidate int64  `json:"candidate"`
	Prime     bool   `json:"prime"`
	Cached    bool   `json:"cached"`
	Error     string `json:"error,omitempty"`
}

// NewRequest コンストラクタ。IDにUUIDを採番する。
func NewRequest(candidate int64) *Request {
	return &Request{Id: uuid.New().String(), Candidate: candidate}
}

// Encode リクエストをJSONへ変換
func (r *Request) Encode() ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Errorf("failed to encode request: %w", err)
	}
	return b, nil
}

// DecodeRequest JSONからリクエストへ変換
func DecodeRequest(b []byte) (*Request, error) {
	if len(b) == 0 {
		return nil, ErrEmptyMessage
	}

	var r Request
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, errors.Errorf("failed to decode request: %w", err)
	}
	return &r, nil
}

// Encode 応答をJSONへ変換
func (r *Response) Encode() ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, errors.Errorf("failed to encode response: %w", err)
	}
	return b, nil
}

// DecodeResponse JSONから応答へ変換
func DecodeResponse(b []byte) (*Response, error) {
	if len(b) == 0 {
		return nil, ErrEmptyMessage
	}

	var r Response
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, errors.Errorf("failed to decode response: %w", err)
	}
	return &r, nil
}
