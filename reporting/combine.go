package reporting

import (
	"sort"
	"time"

	"github.com/dora-dhcp/compat-matrix/types"
)

// BuildCombined merges up to two backend result sets into a single matrix.
// Either input may be nil; the caller is responsible for rejecting the case
// where both are. Rows are the union of (client, proto) pairs across the
// inputs, sorted ascending, and meta.backends follows the fixed backend
// priority order regardless of which input was supplied first.
func BuildCombined(standalone, nats *types.ResultSet) *types.CombinedMatrix {
	combined := &types.CombinedMatrix{
		Meta: types.CombinedMeta{
			Generated: time.Now().UTC().Format(types.TimestampFormat),
			Backends:  []string{},
		},
		Rows:    []types.CombinedRow{},
		Summary: make(map[string]types.Summary),
	}

	inputs := map[string]*types.ResultSet{
		types.BackendStandalone: standalone,
		types.BackendNATS:       nats,
	}

	type rowKey struct {
		client, proto string
	}
	rows := make(map[rowKey]*types.CombinedRow)

	for _, backend := range types.BackendOrder {
		rs := inputs[backend]
		if rs == nil {
			continue
		}
		combined.Meta.Backends = append(combined.Meta.Backends, backend)
		combined.Summary[backend] = rs.Summary

		for client, protocols := range rs.Clients {
			for proto, tests := range protocols {
				key := rowKey{client, proto}
				row, ok := rows[key]
				if !ok {
					row = &types.CombinedRow{
						Client:     client,
						Proto:      proto,
						Standalone: make(map[string]types.Status),
						Nats:       make(map[string]types.Status),
					}
					rows[key] = row
				}
				for testName, outcome := range tests {
					row.SetCell(backend, types.ColumnName(testName), outcome.Status)
				}
			}
		}
	}

	keys := make([]rowKey, 0, len(rows))
	for key := range rows {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].client != keys[j].client {
			return keys[i].client < keys[j].client
		}
		return keys[i].proto < keys[j].proto
	})
	for _, key := range keys {
		combined.Rows = append(combined.Rows, *rows[key])
	}

	return combined
}

// BaselineStatus looks up a cell's status in a previously combined matrix.
// It reports false when the baseline has no matching row, or the backend or
// column is not present in it.
func BaselineStatus(baseline *types.CombinedMatrix, client, proto, backend, col string) (types.Status, bool) {
	if baseline == nil {
		return "", false
	}
	row := baseline.Row(client, proto)
	if row == nil {
		return "", false
	}
	status, ok := row.Cells(backend)[col]
	return status, ok
}
