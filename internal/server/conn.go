package server

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/google/uuid"

	"github.com/marmos91/respkv/internal/logger"
	"github.com/marmos91/respkv/internal/resp"
)

// handleConnection runs the request/reply loop for one accepted socket:
// read a frame, dispatch it, write the reply, repeat. It never panics on
// client input; a recover() here is a last-resort safety net so a bug in
// a command handler cannot take down the acceptor.
func (s *Server) handleConnection(ctx context.Context, conn net.Conn) {
	connID := uuid.NewString()
	clientIP, _, _ := net.SplitHostPort(conn.RemoteAddr().String())
	lc := logger.NewLogContext(clientIP).WithConnectionID(connID)
	ctx = logger.WithContext(ctx, lc)

	s.trackConnectionOpened()

	defer func() {
		if r := recover(); r != nil {
			logger.ErrorCtx(ctx, "connection handler panic", "recovered", r)
		}
		_ = conn.Close()
		s.trackConnectionClosed()
		logger.InfoCtx(ctx, "connection closed")
	}()

	logger.InfoCtx(ctx, "connection accepted")

	reader := resp.NewReader(conn)
	defer reader.Close()
	writer := resp.NewWriter(conn)

	for {
		frame, err := reader.ReadFrame(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			logger.WarnCtx(ctx, "decode error, closing connection", "error", err)
			return
		}

		logger.DebugCtx(ctx, "request received")

		reply, err := s.dispatcher.Dispatch(ctx, *frame)
		if err != nil {
			logger.WarnCtx(ctx, "malformed request, closing connection", "error", err)
			return
		}

		if err := writer.WriteFrame(reply); err != nil {
			logger.WarnCtx(ctx, "write error, closing connection", "error", err)
			return
		}

		logger.DebugCtx(ctx, "reply sent")
	}
}
