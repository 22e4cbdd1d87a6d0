package monitor

import (
	"bytes"
	"strings"
)

// Poll is the poll timer's callback, invoked once per tick from the
// background goroutine. It is a no-op while disconnected. While
// connected it drains whatever bytes the port has buffered (bounded by
// the configured read timeout), splits them into newline-terminated
// lines, and forwards each line to the sink. Transport read errors are
// reported to the sink and do not tear down the connection; the next
// tick retries unconditionally.
func (s *Service) Poll() {
	if !s.isOpen.Load() {
		return
	}

	if s.metricsEnabled.Load() {
		s.metrics.PollTicks.Add(1)
	}

	buf := s.readPool.Get()
	defer s.readPool.Put(buf)

	// The read lock prevents Disconnect from closing the handle while
	// a read is in flight. Since Disconnect joins this goroutine before
	// closing, the handle here is always fully open.
	s.mu.RLock()
	if !s.isOpen.Load() || s.handle == nil {
		s.mu.RUnlock()
		return
	}
	n, err := s.handle.Read(buf)
	s.mu.RUnlock()

	if err != nil {
		if s.metricsEnabled.Load() {
			s.metrics.ReadErrors.Add(1)
		}
		s.Logger.Error("serial read failed", "error", err.Error())
		s.sink.Append("Error reading serial port: " + err.Error())
		return
	}
	if n == 0 {
		// Read timeout elapsed with no data.
		return
	}

	if s.metricsEnabled.Load() {
		s.metrics.BytesRead.Add(int64(n))
	}

	s.splitLines(buf[:n])
}

// splitLines appends a chunk to the pending line buffer and emits every
// complete line. Only the poll goroutine touches lineBuf.
func (s *Service) splitLines(chunk []byte) {
	for len(chunk) > 0 {
		idx := bytes.IndexByte(chunk, '\n')
		if idx == -1 {
			s.lineBuf = append(s.lineBuf, chunk...)
			if len(s.lineBuf) > maxLineSize {
				// drop overly long lines
				s.lineBuf = s.lineBuf[:0]
			}
			return
		}

		s.lineBuf = append(s.lineBuf, chunk[:idx]...)
		s.emitLine(s.lineBuf)
		s.lineBuf = s.lineBuf[:0]

		chunk = chunk[idx+1:]
	}
}

// emitLine decodes a raw line and hands it to the sink. Invalid UTF-8
// bytes are dropped rather than treated as fatal; trailing whitespace
// (including the '\r' of CRLF devices) is trimmed.
func (s *Service) emitLine(raw []byte) {
	line := strings.ToValidUTF8(string(raw), "")
	line = strings.TrimRight(line, " \t\r\n")
	if line == "" {
		return
	}

	if s.metricsEnabled.Load() {
		s.metrics.LinesReceived.Add(1)
	}
	s.Logger.Debug("line received", "line", line)
	s.sink.Append("Received: " + line)
}
