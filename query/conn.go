package query

import (
	"net"

	"github.com/cockroachdb/errors"
)

// ErrEof 応答を読む前に接続が閉じられた場合のエラー
var ErrEof = errors.New("EOF")

// ErrIdMismatch 応答のIDがリクエストと一致しない場合のエラー
var ErrIdMismatch = errors.New("response id mismatch")

// DialTCP はnet.DialTCPのラッパー
func DialTCP(address string) (*net.TCPConn, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", address)
	if err != nil {
		return nil, errors.Errorf("Dial TCP error: %w", err)
	}
	return net.DialTCP("tcp", nil, tcpAddr)
}

// ListenTCP はnet.ListenTCPのラッパー
func ListenTCP(address string) (*net.TCPListener, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", address)
	if err != nil {
		return nil, errors.Errorf("Resolve TCPAddr error: %w", err)
	}
	return net.ListenTCP("tcp", tcpAddr)
}
