package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"
	log "github.com/sirupsen/logrus"

	"tableflip.dev/lanes/pkg/board"
	"tableflip.dev/lanes/pkg/item"
)

// ErrUnknownSession is returned when a session has no records.
var ErrUnknownSession = errors.New("store: unknown session")

// Record is one committed board snapshot.
type Record struct {
	Session string      `json:"session"`
	Seq     int         `json:"seq"`
	Version uint64      `json:"version"`
	At      time.Time   `json:"at"`
	Items   []item.Item `json:"items"`
}

// SessionInfo summarizes the records written by one process run.
type SessionInfo struct {
	ID      string    `json:"id"`
	Records int       `json:"records"`
	Started time.Time `json:"started"`
	Updated time.Time `json:"updated"`
}

// Journal appends board snapshots to disk so a run can be inspected after
// the fact. It never restores a board.
type Journal struct {
	d        *diskv.Diskv
	basePath string
	logger   log.FieldLogger
	now      func() time.Time
}

// Open creates a Journal rooted at basePath.
func Open(basePath string, logger log.FieldLogger) (*Journal, error) {
	if basePath == "" {
		return nil, errors.New("store: journal path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure journal path: %w", err)
	}
	if logger == nil {
		l := log.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Journal{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Path is the directory holding the journal.
func (j *Journal) Path() string {
	return j.basePath
}

// Session writes the records of a single run.
type Session struct {
	j   *Journal
	id  string
	mu  sync.Mutex
	seq int
}

// Begin starts a new session with a fresh id.
func (j *Journal) Begin() *Session {
	return &Session{j: j, id: uuid.NewString()}
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Append writes one change as the next record of the session.
func (s *Session) Append(change board.Change) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	rec := Record{
		Session: s.id,
		Seq:     seq,
		Version: change.Version,
		At:      s.j.now().UTC(),
		Items:   change.Sequence.Clone(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.j.d.Write(toKey(s.id, seq), data)
}

// Follow appends every change from changes until ctx is done or changes is
// closed. Write failures are logged and do not stop the session.
func (s *Session) Follow(ctx context.Context, changes <-chan board.Change) {
	logger := s.j.logger.WithField("session", s.id)
	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			if err := s.Append(change); err != nil {
				logger.WithError(err).WithField("version", change.Version).Warn("journal write failed")
				continue
			}
			logger.WithField("version", change.Version).Debug("journal record written")
		}
	}
}

// Records returns the records of a session in write order.
func (j *Journal) Records(ctx context.Context, session string) ([]Record, error) {
	var records []Record
	for key := range j.d.Keys(ctx.Done()) {
		pk := keyToPathTransform(key)
		if len(pk.Path) == 0 || pk.Path[0] != session {
			continue
		}
		rec, err := j.read(key)
		if err != nil {
			j.logger.WithError(err).WithField("key", key).Warn("skipping unreadable record")
			continue
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, session)
	}
	sort.Slice(records, func(a, b int) bool { return records[a].Seq < records[b].Seq })
	return records, nil
}

// Latest returns the last record of a session.
func (j *Journal) Latest(ctx context.Context, session string) (Record, error) {
	records, err := j.Records(ctx, session)
	if err != nil {
		return Record{}, err
	}
	return records[len(records)-1], nil
}

// Sessions lists every session, oldest first.
func (j *Journal) Sessions(ctx context.Context) []SessionInfo {
	all := make(map[string]*SessionInfo)
	for key := range j.d.Keys(ctx.Done()) {
		rec, err := j.read(key)
		if err != nil {
			j.logger.WithError(err).WithField("key", key).Warn("skipping unreadable record")
			continue
		}
		info, ok := all[rec.Session]
		if !ok {
			info = &SessionInfo{ID: rec.Session, Started: rec.At, Updated: rec.At}
			all[rec.Session] = info
		}
		info.Records++
		if rec.At.Before(info.Started) {
			info.Started = rec.At
		}
		if rec.At.After(info.Updated) {
			info.Updated = rec.At
		}
	}

	list := make([]SessionInfo, 0, len(all))
	for _, info := range all {
		list = append(list, *info)
	}
	sort.SliceStable(list, func(a, b int) bool {
		if list[a].Started.Equal(list[b].Started) {
			return list[a].ID < list[b].ID
		}
		return list[a].Started.Before(list[b].Started)
	})
	return list
}

func (j *Journal) read(key string) (Record, error) {
	val, err := j.d.Read(key)
	if err != nil {
		return Record{}, err
	}
	var rec Record
	if err := json.Unmarshal(val, &rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Keys look like `session/00000001`; the session becomes a directory.
func toKey(session string, seq int) string {
	return fmt.Sprintf("%s/%08d", session, seq)
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "/")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pathKey.Path...), pathKey.FileName), "/")
}

func seqFromFileName(name string) (int, bool) {
	n, err := strconv.Atoi(name)
	return n, err == nil
}
