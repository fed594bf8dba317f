package messagequeue

// MessageQueue defines the interface for message queue services. The
// application only publishes; alert consumers run out of process.
type MessageQueue interface {
	Publish(queueName string, body []byte) error
	Close() error
}
