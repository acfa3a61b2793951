package fulfillment

type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusCompleted  Status = "completed"
)

// Rantai maju ketat: tiap status punya tepat satu penerus, completed terminal.
var successor = map[Status]Status{
	StatusWaiting:    StatusProcessing,
	StatusProcessing: StatusReady,
	StatusReady:      StatusCompleted,
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusWaiting, StatusProcessing, StatusReady, StatusCompleted:
		return true
	}
	return false
}

// Next mengembalikan penerus sah; ok=false untuk completed.
func Next(s Status) (Status, bool) {
	n, ok := successor[s]
	return n, ok
}

func CanTransition(from, to Status) bool {
	n, ok := successor[from]
	return ok && n == to
}
