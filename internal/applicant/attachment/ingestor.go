// Package attachment reads uploaded documents with at most one read in
// flight per (session, slot).
package attachment

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"insurtech/internal/applicant/models"
	id "insurtech/pkg/domain"
	"insurtech/pkg/platform/sentinel"
)

const defaultChunkSize = 32 * 1024

// Key identifies one attachment slot of one session.
type Key struct {
	Session id.ApplicationID
	Slot    models.Slot
}

type read struct {
	generation uint64
	cancel     context.CancelFunc
}

// Ingestor cancels the previous read of a slot when a newer one starts.
type Ingestor struct {
	mu        sync.Mutex
	inflight  map[Key]read
	latest    map[Key]uint64
	maxSize   int64
	chunkSize int
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithMaxSize overrides the accepted size limit.
func WithMaxSize(n int64) Option {
	return func(i *Ingestor) {
		if n > 0 {
			i.maxSize = n
		}
	}
}

// WithChunkSize sets how many bytes are read between cancellation checks.
func WithChunkSize(n int) Option {
	return func(i *Ingestor) {
		if n > 0 {
			i.chunkSize = n
		}
	}
}

func New(opts ...Option) *Ingestor {
	i := &Ingestor{
		inflight:  make(map[Key]read),
		latest:    make(map[Key]uint64),
		maxSize:   models.MaxAttachmentSize,
		chunkSize: defaultChunkSize,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Ingest reads r for the given slot generation. A newer Ingest for the same
// key cancels this one, which then fails with sentinel.ErrCanceled. An Ingest
// that arrives after a newer generation already started fails the same way
// without reading. Content larger than the size limit fails with a
// *models.AttachmentError.
func (i *Ingestor) Ingest(ctx context.Context, key Key, generation uint64, r io.Reader) ([]byte, error) {
	readCtx, done, ok := i.begin(ctx, key, generation)
	if !ok {
		return nil, fmt.Errorf("read of %s generation %d already superseded: %w", key.Slot, generation, sentinel.ErrCanceled)
	}
	defer done()

	data, err := i.read(readCtx, r)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return nil, fmt.Errorf("read of %s generation %d superseded: %w", key.Slot, generation, sentinel.ErrCanceled)
		}
		return nil, err
	}
	return data, nil
}

// CancelSession aborts every in-flight read of a session and forgets its
// generations.
func (i *Ingestor) CancelSession(sessionID id.ApplicationID) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for key, r := range i.inflight {
		if key.Session == sessionID {
			r.cancel()
			delete(i.inflight, key)
		}
	}
	for key := range i.latest {
		if key.Session == sessionID {
			delete(i.latest, key)
		}
	}
}

// InFlight returns the number of reads in progress.
func (i *Ingestor) InFlight() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.inflight)
}

// begin registers the read for key. It refuses generations older than the
// newest one started so a late start can never cancel a newer upload.
func (i *Ingestor) begin(ctx context.Context, key Key, generation uint64) (context.Context, func(), bool) {
	i.mu.Lock()
	if generation < i.latest[key] {
		i.mu.Unlock()
		return nil, nil, false
	}
	i.latest[key] = generation
	readCtx, cancel := context.WithCancel(ctx)
	if prev, ok := i.inflight[key]; ok {
		prev.cancel()
	}
	i.inflight[key] = read{generation: generation, cancel: cancel}
	i.mu.Unlock()

	return readCtx, func() {
		cancel()
		i.mu.Lock()
		if cur, ok := i.inflight[key]; ok && cur.generation == generation {
			delete(i.inflight, key)
		}
		i.mu.Unlock()
	}, true
}

func (i *Ingestor) read(ctx context.Context, r io.Reader) ([]byte, error) {
	limited := io.LimitReader(r, i.maxSize+1)
	buf := make([]byte, i.chunkSize)
	var data []byte
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := limited.Read(buf)
		data = append(data, buf[:n]...)
		if int64(len(data)) > i.maxSize {
			return nil, &models.AttachmentError{Reason: models.AttachmentReasonTooLarge, Message: models.MessageAttachmentTooLarge}
		}
		if errors.Is(err, io.EOF) {
			return data, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading attachment: %w", err)
		}
	}
}
