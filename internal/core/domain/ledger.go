package domain

// LedgerRecord is the persisted spend state: accumulated currency amounts
// keyed by ISO calendar day ("2006-01-02") and calendar month ("2006-01").
// Daily and monthly buckets are only ever incremented together; monthly is
// never recomputed from daily.
type LedgerRecord struct {
	Daily   map[string]float64 `json:"daily"`
	Monthly map[string]float64 `json:"monthly"`
}

func NewLedgerRecord() LedgerRecord {
	return LedgerRecord{
		Daily:   map[string]float64{},
		Monthly: map[string]float64{},
	}
}

func (r LedgerRecord) Clone() LedgerRecord {
	out := NewLedgerRecord()
	for k, v := range r.Daily {
		out.Daily[k] = v
	}
	for k, v := range r.Monthly {
		out.Monthly[k] = v
	}
	return out
}
