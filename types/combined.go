package types

// CombinedMeta describes a combined matrix: when it was generated and which
// backends contributed, in fixed priority order.
type CombinedMeta struct {
	Generated string   `json:"generated"`
	Backends  []string `json:"backends"`
}

// CombinedRow is one (client, protocol) row of the combined matrix. Each
// per-backend map only contains columns present in that backend's input;
// absent columns render as N/A, never as a fabricated status.
type CombinedRow struct {
	Client     string            `json:"client"`
	Proto      string            `json:"proto"`
	Standalone map[string]Status `json:"standalone"`
	Nats       map[string]Status `json:"nats"`
}

// Cells returns the column->status map for a backend label, or nil for an
// unknown label.
func (r *CombinedRow) Cells(backend string) map[string]Status {
	switch backend {
	case BackendStandalone:
		return r.Standalone
	case BackendNATS:
		return r.Nats
	}
	return nil
}

// SetCell stores a status under a backend label. Unknown labels are ignored.
func (r *CombinedRow) SetCell(backend, col string, status Status) {
	if cells := r.Cells(backend); cells != nil {
		cells[col] = status
	}
}

// CombinedMatrix is the merged view over both backends' result sets, built
// fresh on each formatter invocation. Rows are sorted by (client, proto) and
// form the union of pairs seen in either input. Summaries are copied verbatim
// from the inputs, never recomputed.
type CombinedMatrix struct {
	Meta    CombinedMeta       `json:"meta"`
	Rows    []CombinedRow      `json:"rows"`
	Summary map[string]Summary `json:"summary"`
}

// Row returns the row for (client, proto), or nil if absent. Linear scan;
// matrix sizes are bounded by the client/protocol enumeration.
func (m *CombinedMatrix) Row(client, proto string) *CombinedRow {
	for i := range m.Rows {
		if m.Rows[i].Client == client && m.Rows[i].Proto == proto {
			return &m.Rows[i]
		}
	}
	return nil
}

// HasFailures reports whether any backend's summary recorded failures.
func (m *CombinedMatrix) HasFailures() bool {
	for _, s := range m.Summary {
		if s.Failed > 0 {
			return true
		}
	}
	return false
}
