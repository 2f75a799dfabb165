package logging

import (
	"errors"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
	"time"
)

// LogstashWriter ships log lines to a Logstash TCP input from a background
// goroutine. Write only queues; when the queue is full or Logstash is down,
// lines are dropped so request handling never waits on the network.
type LogstashWriter struct {
	addr          string
	dialTimeout   time.Duration
	writeTimeout  time.Duration
	retryInterval time.Duration
	dial          func(network, addr string, timeout time.Duration) (net.Conn, error)

	queue chan []byte
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

type Option func(*LogstashWriter)

func WithDialTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) {
		w.dialTimeout = d
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(w *LogstashWriter) {
		w.writeTimeout = d
	}
}

// WithRetryInterval sets how long to wait before dialling again after a
// failed connect or write.
func WithRetryInterval(d time.Duration) Option {
	return func(w *LogstashWriter) {
		w.retryInterval = d
	}
}

// WithQueueSize bounds the number of lines waiting to be shipped.
func WithQueueSize(n int) Option {
	return func(w *LogstashWriter) {
		if n > 0 {
			w.queue = make(chan []byte, n)
		}
	}
}

func NewLogstashWriter(addr string, opts ...Option) (*LogstashWriter, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("logstash: empty address")
	}

	w := &LogstashWriter{
		addr:          addr,
		dialTimeout:   2 * time.Second,
		writeTimeout:  time.Second,
		retryInterval: 5 * time.Second,
		dial:          net.DialTimeout,
		queue:         make(chan []byte, 1024),
		done:          make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	go w.run()
	return w, nil
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// Setup mirrors the standard logger to Logstash when addr is set. The
// returned closer flushes and disconnects; it is a no-op without addr.
func Setup(addr string) (io.Closer, error) {
	if strings.TrimSpace(addr) == "" {
		return noopCloser{}, nil
	}
	w, err := NewLogstashWriter(addr)
	if err != nil {
		return nil, err
	}
	log.SetOutput(io.MultiWriter(os.Stderr, w))
	return w, nil
}

func (w *LogstashWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	line := make([]byte, len(p), len(p)+1)
	copy(line, p)
	if line[len(line)-1] != '\n' {
		line = append(line, '\n')
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, io.ErrClosedPipe
	}
	select {
	case w.queue <- line:
	default:
	}
	return len(p), nil
}

// Close stops accepting lines, ships what is already queued, and closes the
// connection.
func (w *LogstashWriter) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.queue)
	w.mu.Unlock()

	<-w.done
	return nil
}

func (w *LogstashWriter) run() {
	defer close(w.done)

	var conn net.Conn
	var nextRetry time.Time
	defer func() {
		if conn != nil {
			_ = conn.Close()
		}
	}()

	for line := range w.queue {
		if conn == nil {
			if !nextRetry.IsZero() && time.Now().Before(nextRetry) {
				continue
			}
			c, err := w.dial("tcp", w.addr, w.dialTimeout)
			if err != nil {
				nextRetry = time.Now().Add(w.retryInterval)
				continue
			}
			conn, nextRetry = c, time.Time{}
		}

		if w.writeTimeout > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(w.writeTimeout))
		}
		if _, err := conn.Write(line); err != nil {
			_ = conn.Close()
			conn = nil
			nextRetry = time.Now().Add(w.retryInterval)
		}
	}
}
