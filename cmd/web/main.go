package main

import "collabra_backend/internal/app"

func main() {
	app.Run()
}
