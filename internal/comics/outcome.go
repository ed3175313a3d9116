package comics

import "errors"

type Status int

const (
	StatusSaved Status = iota
	StatusNotFound
	StatusTransportFailure
	StatusWriteFailure
)

func (s Status) String() string {
	switch s {
	case StatusSaved:
		return "saved"
	case StatusNotFound:
		return "not_found"
	case StatusTransportFailure:
		return "transport_failure"
	case StatusWriteFailure:
		return "write_failure"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of processing one comic.
type Outcome struct {
	ID     int
	Status Status
	Path   string
	Bytes  int64
	Err    error
}

func (o Outcome) OK() bool {
	return o.Status == StatusSaved
}

func Saved(id int, path string, n int64) Outcome {
	return Outcome{ID: id, Status: StatusSaved, Path: path, Bytes: n}
}

// Classify turns a per-item error into its terminal outcome. Errors that
// do not belong to the taxonomy count as transport failures.
func Classify(id int, err error) Outcome {
	var (
		we *WriteError
		mr *MalformedReferenceError
	)

	switch {
	case errors.Is(err, ErrURLNotFound), errors.As(err, &mr):
		return Outcome{ID: id, Status: StatusNotFound, Err: err}
	case errors.As(err, &we):
		return Outcome{ID: id, Status: StatusWriteFailure, Path: we.Path, Err: err}
	default:
		return Outcome{ID: id, Status: StatusTransportFailure, Err: err}
	}
}
