package main

import "qmatrix/internal/app/server"

func main() {
	server.Run()
}
