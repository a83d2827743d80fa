package main

import (
	"fmt"
	"log"
	"net"

	"github.com/nhdewitt/orders-server/internal/config"
	"github.com/nhdewitt/orders-server/internal/handler"
	"github.com/nhdewitt/orders-server/internal/request"
)

const port = ":42069"

// tcplistener prints each parsed request and the handler it would be routed
// to, without writing a response.
func main() {
	listener, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("error listening: %v", err.Error())
	}
	defer listener.Close()

	set := handler.NewSet(config.Load())

	fmt.Println("Listening for TCP traffic on", port)
	for {
		c, err := listener.Accept()
		if err != nil {
			log.Fatalf("error accepting connection: %v", err)
		}
		log.Println("Connection accepted:", c.RemoteAddr())

		req, err := request.RequestFromReader(c)
		if err != nil {
			log.Printf("error parsing request: %v", err)
			c.Close()
			continue
		}

		fmt.Println("Request line:")
		fmt.Printf("- Method: %s\n", req.RequestLine.Method)
		fmt.Printf("- Target: %s\n", req.RequestLine.RequestTarget)
		fmt.Printf("- Version: %s\n", req.RequestLine.HttpVersion)
		fmt.Println("Headers:")
		for _, k := range req.Headers.Keys() {
			fmt.Printf("- %s: %s\n", k, req.Headers[k])
		}
		fmt.Println("Route:", set.Route(req).Name())
		c.Close()
		fmt.Println("Connection to ", c.RemoteAddr(), "closed")
	}
}
