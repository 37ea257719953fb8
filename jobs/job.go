package jobs

// Job runs forever once started; daemons launch each one on its own goroutine.
type Job interface {
	Process()
}
