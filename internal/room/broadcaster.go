package room

import "github.com/gin-gonic/gin"

// Conn is the outbound side of one participant's connection.
// Send must not block: implementations queue and deliver in call order.
type Conn interface {
	ID() string
	Send(msg gin.H)
}
