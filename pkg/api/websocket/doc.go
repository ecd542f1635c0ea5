// Package websocket provides streaming uppercase over WebSocket.
//
// Clients connect to /uppercase/ws and receive one uppercased text frame
// for each text frame they send. Binary frames close the stream.
package websocket
