// Package store is the bbolt persistence layer of the token ledger. One
// database holds a bucket per table; rows are gob-encoded and addressed by
// composite keys scoped to the token symbol. Every ledger operation runs
// inside a single bbolt transaction, which is what makes each state-changing
// call an atomic unit.
package store

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"github.com/vestmark/libvestmark-go/vesting"
)

var (
	bucketTokens      = []byte("tokens")
	bucketTokenIndex  = []byte("token_index")
	bucketBalances    = []byte("balances")
	bucketFreezes     = []byte("freezes")
	bucketBigAccounts = []byte("big_accounts")
	bucketRules       = []byte("rules")
	bucketPositions   = []byte("positions")
	bucketStaticLocks = []byte("static_locks")
)

// DB wraps a bbolt database holding all ledger tables.
type DB struct {
	db *bbolt.DB
}

// Open opens or creates the ledger database at dbPath.
// The parent directory is created if it does not exist.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("store: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{
			bucketTokens, bucketTokenIndex, bucketBalances, bucketFreezes,
			bucketBigAccounts, bucketRules, bucketPositions, bucketStaticLocks,
		} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("store: create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: create buckets: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the underlying database.
func (d *DB) Close() error { return d.db.Close() }

// Update runs fn inside a single read-write transaction. Returning an error
// rolls back every mutation made by fn.
func (d *DB) Update(fn func(*Tx) error) error {
	return d.db.Update(func(btx *bbolt.Tx) error {
		return fn(&Tx{btx: btx})
	})
}

// View runs fn inside a read-only transaction.
func (d *DB) View(fn func(*Tx) error) error {
	return d.db.View(func(btx *bbolt.Tx) error {
		return fn(&Tx{btx: btx})
	})
}

// Tx exposes typed row accessors over one bbolt transaction.
type Tx struct {
	btx *bbolt.Tx
}

// encodeGob serializes a row using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes a gob-encoded row.
func decodeGob(data []byte, v interface{}) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Tokens
// ---------------------------------------------------------------------------

// Token retrieves the registry row for a symbol code.
func (t *Tx) Token(symCode string) (*Token, error) {
	data := t.btx.Bucket(bucketTokens).Get([]byte(symCode))
	if data == nil {
		return nil, ErrNotFound
	}
	var tok Token
	if err := decodeGob(data, &tok); err != nil {
		return nil, fmt.Errorf("store: decode token %q: %w", symCode, err)
	}
	return &tok, nil
}

// PutToken stores the registry row for a symbol code.
func (t *Tx) PutToken(symCode string, tok *Token) error {
	data, err := encodeGob(tok)
	if err != nil {
		return fmt.Errorf("store: encode token %q: %w", symCode, err)
	}
	return t.btx.Bucket(bucketTokens).Put([]byte(symCode), data)
}

// TokenIndexOwner returns the symbol code that claimed a token index number,
// or ErrNotFound if the index is unclaimed.
func (t *Tx) TokenIndexOwner(idx uint32) (string, error) {
	data := t.btx.Bucket(bucketTokenIndex).Get(indexKey(idx))
	if data == nil {
		return "", ErrNotFound
	}
	return string(data), nil
}

// ClaimTokenIndex records a token index number as taken by a symbol.
func (t *Tx) ClaimTokenIndex(idx uint32, symCode string) error {
	return t.btx.Bucket(bucketTokenIndex).Put(indexKey(idx), []byte(symCode))
}

// ---------------------------------------------------------------------------
// Balances
// ---------------------------------------------------------------------------

// Balance retrieves the raw balance row for (owner, symbol).
func (t *Tx) Balance(symCode, owner string) (int64, error) {
	data := t.btx.Bucket(bucketBalances).Get(ownerKey(symCode, owner))
	if data == nil {
		return 0, ErrNotFound
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("store: balance row for %q: %w", owner, ErrCorrupted)
	}
	return int64(binary.BigEndian.Uint64(data)), nil
}

// PutBalance stores the raw balance row for (owner, symbol).
func (t *Tx) PutBalance(symCode, owner string, balance int64) error {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, uint64(balance))
	return t.btx.Bucket(bucketBalances).Put(ownerKey(symCode, owner), data)
}

// DeleteBalance removes the balance row for (owner, symbol).
func (t *Tx) DeleteBalance(symCode, owner string) error {
	return t.btx.Bucket(bucketBalances).Delete(ownerKey(symCode, owner))
}

// ---------------------------------------------------------------------------
// Freezes
// ---------------------------------------------------------------------------

// FreezeExpiry retrieves the freeze expiry for (owner, symbol).
func (t *Tx) FreezeExpiry(symCode, owner string) (uint64, error) {
	data := t.btx.Bucket(bucketFreezes).Get(ownerKey(symCode, owner))
	if data == nil {
		return 0, ErrNotFound
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("store: freeze row for %q: %w", owner, ErrCorrupted)
	}
	return binary.BigEndian.Uint64(data), nil
}

// PutFreeze upserts the freeze expiry for (owner, symbol).
func (t *Tx) PutFreeze(symCode, owner string, expiresAt uint64) error {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, expiresAt)
	return t.btx.Bucket(bucketFreezes).Put(ownerKey(symCode, owner), data)
}

// DeleteFreeze removes the freeze row for (owner, symbol).
func (t *Tx) DeleteFreeze(symCode, owner string) error {
	return t.btx.Bucket(bucketFreezes).Delete(ownerKey(symCode, owner))
}

// ---------------------------------------------------------------------------
// Big-account flags
// ---------------------------------------------------------------------------

// IsBigAccount reports whether the capability flag is present.
func (t *Tx) IsBigAccount(symCode, owner string) bool {
	return t.btx.Bucket(bucketBigAccounts).Get(ownerKey(symCode, owner)) != nil
}

// PutBigAccount sets the capability flag. Presence-only, no payload.
func (t *Tx) PutBigAccount(symCode, owner string) error {
	return t.btx.Bucket(bucketBigAccounts).Put(ownerKey(symCode, owner), []byte{})
}

// DeleteBigAccount clears the capability flag.
func (t *Tx) DeleteBigAccount(symCode, owner string) error {
	return t.btx.Bucket(bucketBigAccounts).Delete(ownerKey(symCode, owner))
}

// ---------------------------------------------------------------------------
// Vesting rules
// ---------------------------------------------------------------------------

// Rule retrieves a vesting rule from a token's catalog.
func (t *Tx) Rule(symCode string, ruleID uint32) (*vesting.Rule, error) {
	data := t.btx.Bucket(bucketRules).Get(ruleKey(symCode, ruleID))
	if data == nil {
		return nil, ErrNotFound
	}
	var r vesting.Rule
	if err := decodeGob(data, &r); err != nil {
		return nil, fmt.Errorf("store: decode rule %d: %w", ruleID, err)
	}
	return &r, nil
}

// PutRule stores a vesting rule. The catalog is append-only; the caller
// checks for duplicates first.
func (t *Tx) PutRule(symCode string, r *vesting.Rule) error {
	data, err := encodeGob(r)
	if err != nil {
		return fmt.Errorf("store: encode rule %d: %w", r.ID, err)
	}
	return t.btx.Bucket(bucketRules).Put(ruleKey(symCode, r.ID), data)
}

// ---------------------------------------------------------------------------
// Lock positions
// ---------------------------------------------------------------------------

// Position retrieves one lock position by its bucket and logical identity.
func (t *Tx) Position(bucketID []byte, tokenIndex, ruleID uint32) (*Position, error) {
	data := t.btx.Bucket(bucketPositions).Get(positionKey(bucketID, tokenIndex, ruleID))
	if data == nil {
		return nil, ErrNotFound
	}
	var p Position
	if err := decodeGob(data, &p); err != nil {
		return nil, fmt.Errorf("store: decode position: %w", err)
	}
	return &p, nil
}

// PutPosition stores one lock position.
func (t *Tx) PutPosition(bucketID []byte, tokenIndex, ruleID uint32, p *Position) error {
	data, err := encodeGob(p)
	if err != nil {
		return fmt.Errorf("store: encode position: %w", err)
	}
	return t.btx.Bucket(bucketPositions).Put(positionKey(bucketID, tokenIndex, ruleID), data)
}

// ScanBucket iterates every live position in a partition in key order,
// calling fn with each position's logical identity. fn errors abort the scan.
func (t *Tx) ScanBucket(bucketID []byte, fn func(tokenIndex, ruleID uint32, p *Position) error) error {
	c := t.btx.Bucket(bucketPositions).Cursor()
	for k, v := c.Seek(bucketID); k != nil && bytes.HasPrefix(k, bucketID); k, v = c.Next() {
		if len(k) != BucketIDSize+8 {
			return fmt.Errorf("store: position key length %d: %w", len(k), ErrCorrupted)
		}
		tokenIndex := binary.BigEndian.Uint32(k[BucketIDSize:])
		ruleID := binary.BigEndian.Uint32(k[BucketIDSize+4:])
		var p Position
		if err := decodeGob(v, &p); err != nil {
			return fmt.Errorf("store: decode position in scan: %w", err)
		}
		if err := fn(tokenIndex, ruleID, &p); err != nil {
			return err
		}
	}
	return nil
}

// CountBucket returns the number of live positions in a partition.
func (t *Tx) CountBucket(bucketID []byte) (int, error) {
	n := 0
	c := t.btx.Bucket(bucketPositions).Cursor()
	for k, _ := c.Seek(bucketID); k != nil && bytes.HasPrefix(k, bucketID); k, _ = c.Next() {
		n++
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Static locks
// ---------------------------------------------------------------------------

// StaticLock retrieves the administrator-set lock quantity for (owner, symbol).
func (t *Tx) StaticLock(symCode, owner string) (int64, error) {
	data := t.btx.Bucket(bucketStaticLocks).Get(ownerKey(symCode, owner))
	if data == nil {
		return 0, ErrNotFound
	}
	if len(data) != 8 {
		return 0, fmt.Errorf("store: static lock row for %q: %w", owner, ErrCorrupted)
	}
	return int64(binary.BigEndian.Uint64(data)), nil
}

// PutStaticLock stores the lock quantity for (owner, symbol).
func (t *Tx) PutStaticLock(symCode, owner string, quantity int64) error {
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, uint64(quantity))
	return t.btx.Bucket(bucketStaticLocks).Put(ownerKey(symCode, owner), data)
}

// DeleteStaticLock removes the lock row for (owner, symbol).
func (t *Tx) DeleteStaticLock(symCode, owner string) error {
	return t.btx.Bucket(bucketStaticLocks).Delete(ownerKey(symCode, owner))
}
