package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"
)

// Source supplies account rows and generator values to the dashboard.
type Source interface {
	Rows() []Row
	Delete(ids []int) error
	GeneratorFields(context string) map[string]string
}

// Message is one inbox entry of an account.
type Message struct {
	From    string    `json:"from"`
	Subject string    `json:"subject"`
	Date    time.Time `json:"date"`
	Body    string    `json:"body"`
}

type datasetFile struct {
	Accounts   []Row                          `json:"accounts"`
	Messages   map[int][]Message              `json:"messages,omitempty"`
	Generators map[string][]map[string]string `json:"generators,omitempty"`
}

// Dataset is a Source backed by a JSON file. It is safe for concurrent use.
type Dataset struct {
	mu      sync.Mutex
	path    string
	data    datasetFile
	profile map[string]int
}

// ErrNoSuchAccount is returned when an operation names an unknown account.
var ErrNoSuchAccount = errors.New("accounts: no such account")

// NewDataset returns an empty in-memory dataset.
func NewDataset() *Dataset {
	return &Dataset{
		data:    datasetFile{Messages: map[int][]Message{}, Generators: map[string][]map[string]string{}},
		profile: map[string]int{},
	}
}

// LoadDataset reads a dataset from path. Changes are written back to it.
func LoadDataset(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	d := NewDataset()
	if err := json.Unmarshal(raw, &d.data); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	if d.data.Messages == nil {
		d.data.Messages = map[int][]Message{}
	}
	if d.data.Generators == nil {
		d.data.Generators = map[string][]map[string]string{}
	}
	d.path = path
	return d, nil
}

// Path returns the backing file, empty for in-memory datasets.
func (d *Dataset) Path() string { return d.path }

// Rows returns a copy of the account rows in order.
func (d *Dataset) Rows() []Row {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.data.Accounts)
}

// Row returns the account with the given id.
func (d *Dataset) Row(id int) (Row, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i := d.indexLocked(id)
	if i < 0 {
		return Row{}, false
	}
	return d.data.Accounts[i], true
}

// Messages returns the inbox of an account, newest first.
func (d *Dataset) Messages(id int) []Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	msgs := slices.Clone(d.data.Messages[id])
	slices.SortStableFunc(msgs, func(a, b Message) int { return b.Date.Compare(a.Date) })
	return msgs
}

// Delete removes the given accounts. Unknown ids are an error and nothing is
// removed.
func (d *Dataset) Delete(ids []int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, id := range ids {
		if d.indexLocked(id) < 0 {
			return fmt.Errorf("delete %d: %w", id, ErrNoSuchAccount)
		}
	}
	d.data.Accounts = slices.DeleteFunc(d.data.Accounts, func(r Row) bool {
		return slices.Contains(ids, r.ID)
	})
	for _, id := range ids {
		delete(d.data.Messages, id)
	}
	return d.saveLocked()
}

// SetStatus changes the status of the given accounts.
func (d *Dataset) SetStatus(ids []int, st Status) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, id := range ids {
		i := d.indexLocked(id)
		if i < 0 {
			return fmt.Errorf("set status of %d: %w", id, ErrNoSuchAccount)
		}
		d.data.Accounts[i].Status = st
	}
	return d.saveLocked()
}

// Import appends parsed accounts, skipping addresses already present. It
// returns the number of rows added.
func (d *Dataset) Import(parsed []Parsed) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := 1
	seen := make(map[string]bool, len(d.data.Accounts))
	for _, r := range d.data.Accounts {
		next = max(next, r.ID+1)
		seen[r.Email] = true
	}

	added := 0
	for _, p := range parsed {
		if seen[p.Email] {
			continue
		}
		seen[p.Email] = true
		d.data.Accounts = append(d.data.Accounts, Row{
			ID:             next,
			Email:          p.Email,
			Status:         p.Status,
			PasswordOpenAI: p.PasswordOpenAI,
			PasswordMail:   p.PasswordMail,
		})
		next++
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, d.saveLocked()
}

// GeneratorFields returns the current generator profile for a context such
// as "sk" or "in". Unknown contexts yield an empty map.
func (d *Dataset) GeneratorFields(context string) map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()

	profiles := d.data.Generators[context]
	if len(profiles) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(profiles[0]))
	for k, v := range profiles[d.profile[context]%len(profiles)] {
		out[k] = v
	}
	return out
}

// Generate advances a context to its next generator profile.
func (d *Dataset) Generate(context string) map[string]string {
	d.mu.Lock()
	if n := len(d.data.Generators[context]); n > 0 {
		d.profile[context] = (d.profile[context] + 1) % n
	}
	d.mu.Unlock()
	return d.GeneratorFields(context)
}

// SetGenerators replaces the generator profiles of a context.
func (d *Dataset) SetGenerators(context string, profiles []map[string]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data.Generators[context] = profiles
	d.profile[context] = 0
}

// AddMessage appends a message to an account inbox.
func (d *Dataset) AddMessage(id int, m Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data.Messages[id] = append(d.data.Messages[id], m)
}

func (d *Dataset) indexLocked(id int) int {
	return slices.IndexFunc(d.data.Accounts, func(r Row) bool { return r.ID == id })
}

func (d *Dataset) saveLocked() error {
	if d.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(d.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}

	// Write beside the target and rename so a crash never leaves a
	// truncated dataset behind.
	tmp := d.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := os.Rename(tmp, d.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace dataset: %w", err)
	}
	return nil
}
