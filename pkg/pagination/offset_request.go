package pagination

// OffsetRequest represents an offset-based pagination request
type OffsetRequest struct {
	Limit  int `json:"limit" query:"limit"`
	Offset int `json:"offset" query:"offset"`
}

// Validate normalizes pagination parameters to their allowed ranges
func (r *OffsetRequest) Validate() error {
	if r.Limit <= 0 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
	return nil
}
