package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/hailam/chessrules/internal/board"
)

const gamePrefix = "game/"

var (
	// ErrGameNotFound is returned when no game is stored under an ID.
	ErrGameNotFound = errors.New("game not found")
	// ErrInvalidID is returned for empty IDs or IDs containing '/' or spaces.
	ErrInvalidID = errors.New("invalid game id")
	// ErrReplayMismatch is returned when replaying a record does not reach
	// its stored final position.
	ErrReplayMismatch = errors.New("replay does not reach the recorded position")
)

// GameRecord is a stored game: the start position plus the UCI moves played
// from it. FinalFEN, Status and Result describe where the moves lead.
type GameRecord struct {
	ID        string    `json:"id"`
	StartFEN  string    `json:"start_fen"`
	Moves     []string  `json:"moves"`
	SAN       []string  `json:"san,omitempty"`
	FinalFEN  string    `json:"final_fen"`
	Status    string    `json:"status"`
	Result    string    `json:"result"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordFromPosition builds a record for a game that started at startFEN and
// reached pos through the moves in pos's history.
func RecordFromPosition(id, startFEN string, pos *board.Position) (*GameRecord, error) {
	start, err := board.ParseFEN(startFEN)
	if err != nil {
		return nil, fmt.Errorf("start position: %w", err)
	}

	history := pos.History()
	moves := make([]board.Move, len(history))
	texts := make([]string, len(history))
	for i, u := range history {
		moves[i] = u.Move
		texts[i] = u.Move.String()
	}

	status := pos.Status()
	return &GameRecord{
		ID:       id,
		StartFEN: start.FEN(),
		Moves:    texts,
		SAN:      board.MovesToSAN(start, moves),
		FinalFEN: pos.FEN(),
		Status:   status.String(),
		Result:   status.Result(pos.SideToMove()),
	}, nil
}

// Replay rebuilds the final position of rec by applying its moves to its
// start position.
func Replay(rec *GameRecord) (*board.Position, error) {
	pos, err := board.ParseFEN(rec.StartFEN)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", rec.ID, err)
	}
	for i, m := range rec.Moves {
		if err := pos.Apply(m); err != nil {
			return nil, fmt.Errorf("replay %s: move %d: %w", rec.ID, i+1, err)
		}
	}
	if rec.FinalFEN != "" && pos.FEN() != rec.FinalFEN {
		return nil, fmt.Errorf("replay %s: got %s, want %s: %w", rec.ID, pos.FEN(), rec.FinalFEN, ErrReplayMismatch)
	}
	return pos, nil
}

// Config configures Open.
type Config struct {
	// Dir holds the database files. Empty means DatabaseDir("").
	Dir string
	// InMemory keeps everything in memory; Dir is ignored.
	InMemory bool
	Logger   zerolog.Logger
}

// Store wraps BadgerDB for game records.
type Store struct {
	db  *badger.DB
	log zerolog.Logger
	now func() time.Time
}

// Open opens or creates the store described by cfg.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = DatabaseDir(""); err != nil {
				return nil, fmt.Errorf("database dir: %w", err)
			}
		}
		opts = badger.DefaultOptions(dir)
	}
	opts.Logger = badgerLogger{cfg.Logger}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	cfg.Logger.Debug().Str("dir", opts.Dir).Bool("in_memory", cfg.InMemory).Msg("storage opened")
	return &Store{db: db, log: cfg.Logger, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) ([]byte, error) {
	if id == "" || strings.ContainsAny(id, "/ \t\n") {
		return nil, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return []byte(gamePrefix + id), nil
}

// SaveGame stores rec under its ID, replacing any earlier version, and stamps
// UpdatedAt.
func (s *Store) SaveGame(rec *GameRecord) error {
	key, err := gameKey(rec.ID)
	if err != nil {
		return err
	}

	rec.UpdatedAt = s.now().UTC()
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
	if err != nil {
		return fmt.Errorf("save game %s: %w", rec.ID, err)
	}

	s.log.Info().Str("id", rec.ID).Int("moves", len(rec.Moves)).Str("status", rec.Status).Msg("game saved")
	return nil
}

// LoadGame returns the game stored under id.
func (s *Store) LoadGame(id string) (*GameRecord, error) {
	key, err := gameKey(id)
	if err != nil {
		return nil, err
	}

	var rec GameRecord
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%s: %w", id, ErrGameNotFound)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListGames returns every stored game ordered by ID.
func (s *Store) ListGames() ([]*GameRecord, error) {
	var recs []*GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(gamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec GameRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			recs = append(recs, &rec)
		}
		return nil
	})
	return recs, err
}

// DeleteGame removes the game stored under id.
func (s *Store) DeleteGame(id string) error {
	key, err := gameKey(id)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%s: %w", id, ErrGameNotFound)
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}

// Stats tallies the outcomes of the stored games.
type Stats struct {
	Games     int `json:"games"`
	Finished  int `json:"finished"`
	WhiteWins int `json:"white_wins"`
	BlackWins int `json:"black_wins"`
	Draws     int `json:"draws"`
}

// Stats counts results over every stored game.
func (s *Store) Stats() (Stats, error) {
	recs, err := s.ListGames()
	if err != nil {
		return Stats{}, err
	}

	var st Stats
	for _, rec := range recs {
		st.Games++
		switch rec.Result {
		case "1-0":
			st.WhiteWins++
		case "0-1":
			st.BlackWins++
		case "1/2-1/2":
			st.Draws++
		default:
			continue
		}
		st.Finished++
	}
	return st, nil
}

// badgerLogger forwards badger's log lines to zerolog.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error().Str("component", "badger").Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Warn().Str("component", "badger").Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.Debug().Str("component", "badger").Msgf(strings.TrimSpace(format), args...)
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.Trace().Str("component", "badger").Msgf(strings.TrimSpace(format), args...)
}
