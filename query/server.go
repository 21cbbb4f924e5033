package query

import (
	"bufio"
	"context"
	"net"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"

	"prime-pkg/prime"
)

// Cache 判定結果キャッシュのインターフェース(cache.VerdictCacheが満たす)
type Cache interface {
	Get(n int64) (verdict bool, ok bool, err error)
	Set(n int64, verdict bool) error
}

// Recorder 判定ログのインターフェース(store.VerdictStoreが満たす)
type Recorder interface {
	Record(ctx context.Context, candidate int64, isPrime bool) (string, error)
}

// Server 素数判定のTCPエンドポイント
// 1接続1ゴルーチン。リクエストは改行区切りのJSONで受け、同じ接続に応答を書き戻す。
type Server struct {
	bases    []uint64
	cache    Cache
	recorder Recorder
}

// NewServer コンストラクタ。basesがnilの場合はDefaultBasesを使う。
func NewServer(bases []uint64) *Server {
	if bases == nil {
		bases = prime.DefaultBases
	}
	return &Server{bases: bases}
}

// SetCache 判定結果キャッシュをセット
func (s *Server) SetCache(c Cache) {
	s.cache = c
}

// SetRecorder 判定ログをセット
func (s *Server) SetRecorder(r Recorder) {
	s.recorder = r
}

// Serve 接続の受け付けループ。ctxのキャンセルでListenerを閉じて抜ける。
func (s *Server) Serve(ctx context.Context, ln *net.TCPListener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	logrus.WithField("addr", ln.Addr().String()).Info("verdict server started")

	for {
		conn, err := ln.AcceptTCP()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Errorf("accept error: %w", err)
		}
		go s.handleConn(ctx, conn)
	}
}

// handleConn 1接続分のリクエストループ
func (s *Server) handleConn(ctx context.Context, conn *net.TCPConn) {
	defer func() {
		_ = conn.Close()
	}()

	logger := logrus.WithField("remote", conn.RemoteAddr().String())

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		resp := s.answer(ctx, logger, scanner.Bytes())

		b, err := resp.Encode()
		if err != nil {
			logger.WithError(err).Error("failed to encode response")
			return
		}
		if _, err := conn.Write(append(b, '\n')); err != nil {
			logger.WithError(err).Warn("failed to write response")
			return
		}
	}
	if err := scanner.Err(); err != nil {
		logger.WithError(err).Warn("connection read error")
	}
}

// answer 1リクエスト分の判定を実施
func (s *Server) answer(ctx context.Context, logger *logrus.Entry, line []byte) *Response {
	req, err := DecodeRequest(line)
	if err != nil {
		logger.WithError(err).Warn("invalid request")
		return &Response{Error: err.Error()}
	}

	logger = logger.WithFields(logrus.Fields{"id": req.Id, "candidate": req.Candidate})

	// キャッシュ済みの判定はそのまま返す
	if s.cache != nil {
		verdict, ok, err := s.cache.Get(req.Candidate)
		if err != nil {
			logger.WithError(err).Warn("cache get failed")
		} else if ok {
			return &Response{Id: req.Id, Candidate: req.Candidate, Prime: verdict, Cached: true}
		}
	}

	verdict := prime.IsPrimeWithBases(req.Candidate, s.bases)
	logger.WithField("prime", verdict).Debug("candidate tested")

	if s.cache != nil {
		if err := s.cache.Set(req.Candidate, verdict); err != nil {
			logger.WithError(err).Warn("cache set failed")
		}
	}
	if s.recorder != nil {
		if _, err := s.recorder.Record(ctx, req.Candidate, verdict); err != nil {
			logger.WithError(err).Warn("record failed")
		}
	}

	return &Response{Id: req.Id, Candidate: req.Candidate, Prime: verdict}
}
