// Package security holds the PIN gate that guards the journal for the lifetime
// of one process.
package security

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/cases"

	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
)

var (
	ErrEmptyPIN      = errors.New("PIN cannot be empty")
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrNotSetup      = errors.New("account not set up, run 'daybook setup' first")
	ErrLocked        = errors.New("journal is locked")
	ErrNoRecovery    = errors.New("no recovery question configured")
)

// Store is the persistence the gate needs.
type Store interface {
	GetSecurity() (*models.Security, error)
	SaveSecurity(models.Security) error
	UpdatePinHash(hash string) error
}

type State int

const (
	Locked State = iota
	Unlocked
)

func (s State) String() string {
	if s == Unlocked {
		return "unlocked"
	}
	return "locked"
}

// Gate tracks lock state, the signed-in username and a per-unlock session id.
// State lives in memory only; every process starts Locked.
type Gate struct {
	store    Store
	now      func() time.Time
	cost     int
	state    State
	username string
	session  string
}

func NewGate(store Store) *Gate {
	return &Gate{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		cost:  bcrypt.DefaultCost,
	}
}

// SetCost overrides the bcrypt work factor for hashes created from now on.
func (g *Gate) SetCost(cost int) {
	g.cost = cost
}

// normalizeAnswer makes recovery answers compare case-insensitively and ignore
// surrounding whitespace.
func normalizeAnswer(answer string) string {
	return cases.Fold().String(strings.TrimSpace(answer))
}

// digest reduces a secret to a fixed 64-byte hex SHA-256 so secrets of any
// length fit under bcrypt's 72-byte input limit.
func digest(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return []byte(hex.EncodeToString(sum[:]))
}

func (g *Gate) hash(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword(digest(secret), g.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func matches(hash, secret string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), digest(secret)) == nil
}

func (g *Gate) record() (*models.Security, error) {
	sec, err := g.store.GetSecurity()
	if err != nil {
		return nil, fmt.Errorf("failed to read security record: %w", err)
	}
	if sec == nil || sec.PinHash == "" {
		return nil, ErrNotSetup
	}
	return sec, nil
}

func (g *Gate) unlock(username string) {
	g.state = Unlocked
	g.username = username
	g.session = uuid.NewString()
	logger.Info("Journal unlocked", "session", g.session)
}

// IsSetupComplete reports whether an account with a PIN exists.
func (g *Gate) IsSetupComplete() (bool, error) {
	_, err := g.record()
	if errors.Is(err, ErrNotSetup) {
		return false, nil
	}
	return err == nil, err
}

// SetupAccount stores the account, replacing any previous one, and unlocks.
// question and answer may both be empty to skip PIN recovery.
func (g *Gate) SetupAccount(username, pin, question, answer string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	if pin == "" {
		return ErrEmptyPIN
	}
	question = strings.TrimSpace(question)
	if (question == "") != (normalizeAnswer(answer) == "") {
		return fmt.Errorf("recovery question and answer must be given together")
	}

	pinHash, err := g.hash(pin)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}
	var answerHash string
	if question != "" {
		if answerHash, err = g.hash(normalizeAnswer(answer)); err != nil {
			return fmt.Errorf("failed to hash recovery answer: %w", err)
		}
	}

	err = g.store.SaveSecurity(models.Security{
		Username:           username,
		PinHash:            pinHash,
		RecoveryQuestion:   question,
		RecoveryAnswerHash: answerHash,
		CreatedAt:          g.now(),
	})
	if err != nil {
		return err
	}
	logger.Info("Account set up", "recovery", question != "")
	g.unlock(username)
	return nil
}

// VerifyPin unlocks the gate when pin matches. A mismatch, or a journal with no
// account, locks the gate and returns false without an error.
func (g *Gate) VerifyPin(pin string) (bool, error) {
	sec, err := g.record()
	if errors.Is(err, ErrNotSetup) {
		g.Logout()
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !matches(sec.PinHash, pin) {
		logger.Warn("PIN verification failed")
		g.Logout()
		return false, nil
	}
	g.unlock(sec.Username)
	return true, nil
}

// RecoveryQuestion returns the stored question, or ErrNoRecovery.
func (g *Gate) RecoveryQuestion() (string, error) {
	sec, err := g.record()
	if err != nil {
		return "", err
	}
	if sec.RecoveryQuestion == "" {
		return "", ErrNoRecovery
	}
	return sec.RecoveryQuestion, nil
}

// VerifyRecoveryAnswer checks answer against the stored one. It never changes
// the lock state. Without an account or a stored answer it reports false;
// RecoveryQuestion tells those cases apart.
func (g *Gate) VerifyRecoveryAnswer(answer string) (bool, error) {
	sec, err := g.record()
	if errors.Is(err, ErrNotSetup) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if sec.RecoveryAnswerHash == "" {
		return false, nil
	}
	ok := matches(sec.RecoveryAnswerHash, normalizeAnswer(answer))
	if !ok {
		logger.Warn("Recovery answer verification failed")
	}
	return ok, nil
}

// ResetPin overwrites the stored PIN. Callers verify the recovery answer first;
// the gate does not enforce that ordering.
func (g *Gate) ResetPin(newPin string) error {
	if newPin == "" {
		return ErrEmptyPIN
	}
	if _, err := g.record(); err != nil {
		return err
	}
	h, err := g.hash(newPin)
	if err != nil {
		return fmt.Errorf("failed to hash PIN: %w", err)
	}
	if err := g.store.UpdatePinHash(h); err != nil {
		return err
	}
	logger.Info("PIN reset")
	return nil
}

// Logout locks the gate and forgets the username.
func (g *Gate) Logout() {
	if g.state == Unlocked {
		logger.Info("Journal locked", "session", g.session)
	}
	g.state = Locked
	g.username = ""
	g.session = ""
}

// RequireUnlocked returns ErrLocked unless a PIN has been verified.
func (g *Gate) RequireUnlocked() error {
	if g.state != Unlocked {
		return ErrLocked
	}
	return nil
}

func (g *Gate) State() State      { return g.state }
func (g *Gate) IsUnlocked() bool  { return g.state == Unlocked }
func (g *Gate) Username() string  { return g.username }
func (g *Gate) SessionID() string { return g.session }
