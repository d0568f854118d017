package score

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"git.lost.host/meutraa/qwerty/internal/game"
	json "github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"
)

// DefaultScorer keeps every play of a chart and the best one, on sqlite.
type DefaultScorer struct {
	db  *sql.DB
	now func() time.Time
}

// InputsCompact is one lane's recorded presses and releases.
type InputsCompact struct {
	Lane int             `json:"lane"`
	Down []time.Duration `json:"down,omitempty"`
	Up   []time.Duration `json:"up,omitempty"`
}

func compactInputs(inputs []game.Input) []InputsCompact {
	laneCount := 0
	for _, i := range inputs {
		if i.Lane >= laneCount {
			laneCount = i.Lane + 1
		}
	}
	ins := make([]InputsCompact, laneCount)
	for lane := range ins {
		ins[lane].Lane = lane
	}
	for _, i := range inputs {
		if i.Lane < 0 {
			continue
		}
		if i.Down {
			ins[i.Lane].Down = append(ins[i.Lane].Down, i.At)
		} else {
			ins[i.Lane].Up = append(ins[i.Lane].Up, i.At)
		}
	}
	return ins
}

func uncompactInputs(inputs []InputsCompact) []game.Input {
	ins := []game.Input{}
	for _, c := range inputs {
		for _, t := range c.Down {
			ins = append(ins, game.Input{Lane: c.Lane, Down: true, At: t})
		}
		for _, t := range c.Up {
			ins = append(ins, game.Input{Lane: c.Lane, At: t})
		}
	}
	sort.SliceStable(ins, func(i, j int) bool {
		return ins[i].At < ins[j].At
	})
	return ins
}

const schema = `
create table if not exists plays
  (
	  id integer not null primary key,
	  session text not null,
	  sum text not null,
	  title text,
	  score integer not null,
	  max_combo integer not null,
	  accuracy real not null,
	  rank text not null,
	  perfects integer not null,
	  greats integer not null,
	  misses integer not null,
	  spams integer not null,
	  failed integer not null,
	  inputs blob,
	  played_at integer not null
  );
create index if not exists plays_sum on plays(sum);
create table if not exists best
  (
	  sum text not null primary key,
	  session text not null,
	  title text,
	  score integer not null,
	  max_combo integer not null,
	  accuracy real not null,
	  rank text not null,
	  perfects integer not null,
	  greats integer not null,
	  misses integer not null,
	  spams integer not null,
	  failed integer not null
  );
`

func Open(path string) (*DefaultScorer, error) {
	db, err := sql.Open("sqlite3", path)
	if nil != err {
		return nil, fmt.Errorf("unable to open score database: %w", err)
	}
	if _, err := db.Exec(schema); nil != err {
		db.Close()
		return nil, fmt.Errorf("unable to create score tables: %w", err)
	}
	return &DefaultScorer{db: db, now: time.Now}, nil
}

func (s *DefaultScorer) Close() error {
	if nil != s.db {
		return s.db.Close()
	}
	return nil
}

// Hash identifies a chart by its timeline, so renamed files keep their scores.
func Hash(events []game.HitEvent) string {
	h := sha256.New()
	buf := make([]byte, 0, 64)
	for _, e := range events {
		buf = buf[:0]
		buf = strconv.AppendInt(buf, int64(e.Lane), 10)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(e.Time), 10)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(e.Kind), 10)
		buf = append(buf, ':')
		buf = strconv.AppendInt(buf, int64(e.Duration), 10)
		buf = append(buf, '\n')
		h.Write(buf)
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Submit stores the play and replaces the best record of the chart if the
// score is higher. The best max combo is kept across plays.
func (s *DefaultScorer) Submit(rec *Record) error {
	data, err := json.Marshal(compactInputs(rec.Inputs))
	if nil != err {
		return fmt.Errorf("unable to marshal inputs: %w", err)
	}

	tx, err := s.db.Begin()
	if nil != err {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`insert into plays(session, sum, title, score, max_combo, accuracy, rank,
			perfects, greats, misses, spams, failed, inputs, played_at)
		values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.ChartHash, rec.Title, rec.Score, rec.MaxCombo, rec.Accuracy, string(rec.Rank),
		rec.Perfects, rec.Greats, rec.Misses, rec.Spams, rec.Failed, data, s.now().UnixNano(),
	); nil != err {
		return fmt.Errorf("unable to save play: %w", err)
	}

	var best int64
	var bestCombo int
	err = tx.QueryRow("select score, max_combo from best where sum = ?", rec.ChartHash).Scan(&best, &bestCombo)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case nil != err:
		return fmt.Errorf("unable to load best score: %w", err)
	case rec.Score <= best:
		return tx.Commit()
	}

	combo := rec.MaxCombo
	if bestCombo > combo {
		combo = bestCombo
	}
	if _, err := tx.Exec(
		`insert or replace into best(sum, session, title, score, max_combo, accuracy, rank,
			perfects, greats, misses, spams, failed)
		values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ChartHash, rec.SessionID, rec.Title, rec.Score, combo, rec.Accuracy, string(rec.Rank),
		rec.Perfects, rec.Greats, rec.Misses, rec.Spams, rec.Failed,
	); nil != err {
		return fmt.Errorf("unable to save best score: %w", err)
	}
	return tx.Commit()
}

func (s *DefaultScorer) Best(chartHash string) (*Record, error) {
	var rec Record
	var rank string
	err := s.db.QueryRow(
		`select sum, session, title, score, max_combo, accuracy, rank,
			perfects, greats, misses, spams, failed
		from best where sum = ?`, chartHash,
	).Scan(&rec.ChartHash, &rec.SessionID, &rec.Title, &rec.Score, &rec.MaxCombo, &rec.Accuracy, &rank,
		&rec.Perfects, &rec.Greats, &rec.Misses, &rec.Spams, &rec.Failed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if nil != err {
		return nil, fmt.Errorf("unable to load best score: %w", err)
	}
	rec.Rank = Rank(rank)
	return &rec, nil
}

func (s *DefaultScorer) History(chartHash string) ([]History, error) {
	rows, err := s.db.Query(
		`select session, sum, title, score, max_combo, accuracy, rank,
			perfects, greats, misses, spams, failed, inputs, played_at
		from plays where sum = ? order by id`, chartHash)
	if nil != err {
		return nil, fmt.Errorf("unable to load scores: %w", err)
	}
	defer rows.Close()

	histories := []History{}
	for rows.Next() {
		var h History
		var rank string
		var inputs []byte
		var playedAt int64
		if err := rows.Scan(&h.SessionID, &h.ChartHash, &h.Title, &h.Score, &h.MaxCombo, &h.Accuracy, &rank,
			&h.Perfects, &h.Greats, &h.Misses, &h.Spams, &h.Failed, &inputs, &playedAt); nil != err {
			return nil, fmt.Errorf("unable to scan score: %w", err)
		}
		var ins []InputsCompact
		if len(inputs) > 0 {
			if err := json.Unmarshal(inputs, &ins); nil != err {
				return nil, fmt.Errorf("unable to unmarshal input history: %w", err)
			}
		}
		h.Rank = Rank(rank)
		h.Inputs = uncompactInputs(ins)
		h.PlayedAt = time.Unix(0, playedAt)
		histories = append(histories, h)
	}
	return histories, rows.Err()
}
