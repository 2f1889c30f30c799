package concurrent

// Job satu unit kerja worker pool, ID dipakai buat ngurutin hasil lagi
type Job[T any] struct {
	ID      int
	JobItem T
}

func NewJob[T any](id int, item T) Job[T] {
	return Job[T]{ID: id, JobItem: item}
}

type Result[G any] struct {
	ID  int
	Val G
	Err error
}

type JobFunc[T any, G any] func(job T) G
