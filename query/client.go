package query

import (
	"bufio"
	"net"

	"github.com/cockroachdb/errors"
)

// Client 判定エンドポイントへの問い合わせクライアント
// Scannerは一度だけ初期化する想定
type Client struct {
	conn    *net.TCPConn
	scanner *bufio.Scanner
}

// NewClient コンストラクタ
func NewClient(address string) (*Client, error) {
	conn, err := DialTCP(address)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn, scanner: bufio.NewScanner(conn)}, nil
}

// Close 接続のクローズ処理
func (c *Client) Close() error {
	return c.conn.Close()
}

// Check 候補を1件問い合わせて判定結果を受け取る
func (c *Client) Check(candidate int64) (bool, error) {
	req := NewRequest(candidate)

	b, err := req.Encode()
	if err != nil {
		return false, err
	}
	if _, err := c.conn.Write(append(b, '\n')); err != nil {
		return false, errors.Errorf("failed to write request: %w", err)
	}

	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return false, errors.Errorf("failed to read response: %w", err)
		}
		return false, ErrEof
	}

	resp, err := DecodeResponse(c.scanner.Bytes())
	if err != nil {
		return false, err
	}
	if resp.Error != "" {
		return false, errors.Errorf("server error: %s", resp.Error)
	}
	if resp.Id != req.Id {
		return false, ErrIdMismatch
	}

	return resp.Prime, nil
}
