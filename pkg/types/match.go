package types

// MatchedPair is a single donor/request pairing proposed by the matching
// service. It is never persisted; Donor and Request are filled in from the
// snapshot that produced the pairing and stay nil when the referenced record
// cannot be found locally.
type MatchedPair struct {
	DonorID   string        `json:"donorId"`
	RequestID string        `json:"requestId"`
	Reason    string        `json:"reason"`
	Donor     *Donor        `json:"donor,omitempty"`
	Request   *BloodRequest `json:"request,omitempty"`
}
