package room

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close receives the reason when the server closes the connection
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	userID string
	gameID string
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, userID, gameID string) *Client {
	return &Client{
		send:   make(chan interface{}, 256),
		Close:  make(chan string, 1),
		Conn:   conn,
		userID: userID,
		gameID: gameID,
	}
}

// Send send a message to the web client
// A client that is not keeping up loses the message.
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		logrus.WithField("client", c.String()).Warn("client send buffer is full")
		return false
	}
}

// Kick asks the connection to close with the reason
// Only the first reason is kept.
func (c *Client) Kick(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the user and game
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.userID, c.gameID)
}
