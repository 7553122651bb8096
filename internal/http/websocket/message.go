package websocket

// message is a frame accepted from one connection, to be sent to the others.
type message struct {
	from *conn
	data []byte
}
