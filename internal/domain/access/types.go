package access

type State string

const (
	StateFull    State = "full"
	StateLimited State = "limited"
	StateLocked  State = "locked"
)
