// Package memhost is a small in-memory host simulation implementing
// token.RecordRef and token.RentOracle. It exists for tests and
// cmd/tokenctl; the token package never imports it.
package memhost

import (
	"crypto/sha256"

	"github.com/tokenforge/spl-token-engine/pubkey"
	"github.com/tokenforge/spl-token-engine/token"
)

// Record is an in-memory RecordRef.
type Record struct {
	key        pubkey.PublicKey
	owner      pubkey.PublicKey
	signer     bool
	writable   bool
	executable bool
	lamports   uint64
	data       []byte
}

var _ token.RecordRef = (*Record)(nil)

// NewRecord builds a Record with the given key, owner, and data. Signer
// and writable default to false; use the With* setters to flip them.
func NewRecord(key, owner pubkey.PublicKey, data []byte) *Record {
	return &Record{key: key, owner: owner, data: data}
}

// WithSigner marks the record as a transaction signer and returns it,
// for fluent construction in test tables.
func (r *Record) WithSigner(signer bool) *Record {
	r.signer = signer
	return r
}

// WithWritable marks the record as writable and returns it.
func (r *Record) WithWritable(writable bool) *Record {
	r.writable = writable
	return r
}

// WithLamports sets the record's lamport balance and returns it.
func (r *Record) WithLamports(lamports uint64) *Record {
	r.lamports = lamports
	return r
}

func (r *Record) Key() pubkey.PublicKey          { return r.key }
func (r *Record) OwnerProgram() pubkey.PublicKey { return r.owner }
func (r *Record) IsSigner() bool                 { return r.signer }
func (r *Record) IsWritable() bool               { return r.writable }
func (r *Record) IsExecutable() bool             { return r.executable }
func (r *Record) Lamports() uint64               { return r.lamports }
func (r *Record) SetLamports(l uint64)           { r.lamports = l }
func (r *Record) Data() []byte                   { return r.data }
func (r *Record) SetData(d []byte)               { r.data = d }

// StaticRentOracle is a RentOracle backed by a fixed lamports-per-byte
// rate plus a flat account overhead, the same shape as a cluster's rent
// sysvar: `exempt_min = overhead + rate*len`.
type StaticRentOracle struct {
	LamportsPerByte uint64
	AccountOverhead uint64
}

var _ token.RentOracle = StaticRentOracle{}

// DefaultRentOracle mirrors a typical mainnet rent schedule closely
// enough for deterministic tests: ~3480 lamports/byte-year equivalent
// collapsed into a flat per-byte constant, since this engine has no
// notion of epochs.
var DefaultRentOracle = StaticRentOracle{
	LamportsPerByte: 6960,
	AccountOverhead: 890880,
}

// IsExempt implements token.RentOracle.
func (o StaticRentOracle) IsExempt(lamports uint64, dataLen int) bool {
	required := o.AccountOverhead + o.LamportsPerByte*uint64(dataLen)
	return lamports >= required
}

// MinimumBalance returns the lamport balance needed for dataLen bytes to
// be rent-exempt under this oracle, a convenience for test setup and the
// CLI's `demo` command.
func (o StaticRentOracle) MinimumBalance(dataLen int) uint64 {
	return o.AccountOverhead + o.LamportsPerByte*uint64(dataLen)
}

// RentOracleRecord adapts StaticRentOracle into a RecordRef so it can
// occupy the rent-oracle slot in an instruction's record list, the same
// dual role a sysvar account plays in the original runtime.
type RentOracleRecord struct {
	*Record
	StaticRentOracle
}

var _ token.RecordRef = (*RentOracleRecord)(nil)
var _ token.RentOracle = (*RentOracleRecord)(nil)

// NewRentOracleRecord builds a RentOracleRecord at a deterministic,
// well-known key so test fixtures can reference it without plumbing a
// generated pubkey around.
func NewRentOracleRecord(oracle StaticRentOracle) *RentOracleRecord {
	key := sha256.Sum256([]byte("memhost/rent-oracle"))
	return &RentOracleRecord{
		Record:           NewRecord(pubkey.New(key[:]), pubkey.PublicKey{}, nil),
		StaticRentOracle: oracle,
	}
}

// Keypair is a deterministic test signer derived from a seed via
// pubkey.DeriveFromSeed, avoiding any dependency on crypto/ed25519's
// random key generation so fixtures stay reproducible across test runs.
type Keypair struct {
	Seed      [32]byte
	PublicKey pubkey.PublicKey
}

// NewKeypair derives a Keypair from an arbitrary seed string, hashed
// down to 32 bytes with SHA-256 before scalar clamping.
func NewKeypair(seed string) (Keypair, error) {
	h := sha256.Sum256([]byte(seed))
	pub, err := pubkey.DeriveFromSeed(h)
	if err != nil {
		return Keypair{}, err
	}
	return Keypair{Seed: h, PublicKey: pub}, nil
}

// SignerRecord builds a zero-data RecordRef representing this keypair
// acting as a bare signer (the common shape for an authority or
// multisig-cosigner record).
func (k Keypair) SignerRecord() *Record {
	return NewRecord(k.PublicKey, pubkey.PublicKey{}, nil).WithSigner(true)
}
