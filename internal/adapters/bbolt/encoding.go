// Encoding for evaluation history entries.
//
// History keys are the bucket sequence as 8 big-endian bytes, so bbolt's
// byte-ordered cursor walks entries in append order. Values are gob, which is
// compact for the fixed record shape and needs no schema beyond the Go type.
package bbolt

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
)

// seqKey encodes a bucket sequence number as a sortable key.
func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}

// encodeGob encodes a value using gob.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob decodes gob-encoded data into target. Target must be a pointer.
func decodeGob(data []byte, target interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(target)
}
