package store

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// BucketIDSize is the byte length of a derived lock-position partition key:
// 8 bytes of the owner's blake2b digest plus one token-derived shard byte.
const BucketIDSize = 9

// ownerKey builds a composite key scoping an owner row to a token symbol.
// Symbol codes are uppercase letters only, so the zero separator is
// unambiguous for any owner identity.
func ownerKey(symCode, owner string) []byte {
	k := make([]byte, 0, len(symCode)+1+len(owner))
	k = append(k, symCode...)
	k = append(k, 0)
	k = append(k, owner...)
	return k
}

// ruleKey scopes a rule id to a token symbol.
func ruleKey(symCode string, ruleID uint32) []byte {
	k := make([]byte, 0, len(symCode)+1+4)
	k = append(k, symCode...)
	k = append(k, 0)
	k = binary.BigEndian.AppendUint32(k, ruleID)
	return k
}

// indexKey encodes a token index number as a sortable big-endian key.
func indexKey(idx uint32) []byte {
	k := make([]byte, 4)
	binary.BigEndian.PutUint32(k, idx)
	return k
}

// BucketOf derives the lock-position partition for an (owner, token) pair.
// The partition is a scalability device, not a semantic key: positions keep
// (tokenIndex, ruleID) as their logical identity inside the bucket, and
// tokens whose indexes share the low shard nibble share a bucket and its
// live-position bound.
func BucketOf(owner string, tokenIndex uint32) []byte {
	sum := blake2b.Sum256([]byte(owner))
	b := make([]byte, BucketIDSize)
	copy(b, sum[:8])
	b[8] = byte(tokenIndex & 0xf)
	return b
}

// positionKey is the full key of one lock position: partition prefix, then
// the logical (tokenIndex, ruleID) identity.
func positionKey(bucketID []byte, tokenIndex, ruleID uint32) []byte {
	k := make([]byte, 0, BucketIDSize+8)
	k = append(k, bucketID...)
	k = binary.BigEndian.AppendUint32(k, tokenIndex)
	k = binary.BigEndian.AppendUint32(k, ruleID)
	return k
}
