package tasks

// TaskSchedulerInterface is the surface the rest of the application uses to
// drive background processing.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
