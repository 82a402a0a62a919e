package port

// Record is a single catalog resource as returned by the API. Field names
// and types are owned by the platform's schema; the client and the transfer
// engine only inspect a handful of well-known fields and pass everything
// else through unmodified.
type Record map[string]any

// String returns the named field if it is a string, or "" otherwise.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Without returns a copy of the record with the given keys removed.
func (r Record) Without(keys ...string) Record {
	out := r.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
