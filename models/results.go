package models

type PayloadKind int

const (
	PayloadFailure PayloadKind = iota
	PayloadSuccess
)

func (k PayloadKind) String() string {
	if k == PayloadSuccess {
		return "success"
	}
	return "failure"
}

// Field is one labeled value of a contract record. Missing covers an absent
// key as well as null, "", false and 0.
type Field struct {
	Key     string `json:"key" yaml:"key"`
	Value   string `json:"value" yaml:"value"`
	Missing bool   `json:"missing" yaml:"missing"`
}

// Contract is one entry of the results mapping, fields in payload order.
type Contract struct {
	Key    string  `json:"key" yaml:"key"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Payload is the decoded extraction envelope. Kind is PayloadSuccess iff the
// body carried a results mapping.
type Payload struct {
	Kind        PayloadKind `json:"kind" yaml:"kind"`
	Results     []Contract  `json:"results,omitempty" yaml:"results,omitempty"`
	Message     string      `json:"message,omitempty" yaml:"message,omitempty"`
	DownloadURL string      `json:"download_url,omitempty" yaml:"download_url,omitempty"`
}

func (p Payload) HasResults() bool {
	return p.Kind == PayloadSuccess
}

func SuccessPayload(results []Contract) Payload {
	return Payload{Kind: PayloadSuccess, Results: results}
}

func FailurePayload(message string) Payload {
	return Payload{Kind: PayloadFailure, Message: message}
}
