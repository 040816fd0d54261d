package main

import "yuconz/internal/app/server"

func main() {
	server.Run()
}
